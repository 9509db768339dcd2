package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler handles lifecycle confirmations.
// Pickup and delivery confirmations touch only the order. Receipt
// confirmation additionally runs settlement: the status write and all four
// wallet mutations commit in one transaction, so an order is Completed if and
// only if its settlement happened, exactly once.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	settlement services.SettlementEngine
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdvanceOrderStatusCommandHandler creates a handler for lifecycle
// confirmation operations.
func NewAdvanceOrderStatusCommandHandler(
	uowFactory UoWFactory,
	settlement services.SettlementEngine,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the confirmation command.
// The order row lock serializes concurrent confirmations; a repeated receipt
// confirmation fails on the already-Completed order with zero wallet
// mutations.
func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.Target() {
	case order.InTransit:
		err = aggregate.ConfirmPickup(cmd.ActorID())
	case order.Delivered:
		err = aggregate.ConfirmDelivery(cmd.ActorID())
	case order.Completed:
		err = h.settle(ctx, uow, aggregate, cmd.ActorID())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}

// settle confirms receipt and applies the payout to both wallets within the
// caller's transaction.
func (h AdvanceOrderStatusCommandHandler) settle(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	actorID kernel.UUID,
) error {
	if err := aggregate.ConfirmReceipt(actorID); err != nil {
		return err
	}

	settlement, err := h.settlement.Compute(aggregate)
	if err != nil {
		return err
	}

	if settlement.UsedFallbackFee {
		h.logger.Warn("settling with fee ceiling because the selected bid is missing",
			"orderId", aggregate.ID().String(),
			"fee", settlement.Fee.String())
	}

	walletRepo := uow.WalletRepository()

	storeWallet, err := walletRepo.GetByOwner(ctx, aggregate.StoreID())
	if err != nil {
		return err
	}

	riderWallet, err := h.riderWallet(ctx, walletRepo, aggregate)
	if err != nil {
		return err
	}

	if err = h.settlement.Apply(settlement, storeWallet, riderWallet, time.Now().UTC()); err != nil {
		return err
	}

	if err = walletRepo.Update(ctx, storeWallet); err != nil {
		return err
	}

	return walletRepo.Update(ctx, riderWallet)
}

func (h AdvanceOrderStatusCommandHandler) riderWallet(
	ctx context.Context,
	walletRepo ports.WalletRepository,
	aggregate *order.Order,
) (*wallet.Wallet, error) {
	riderID := aggregate.RiderID()
	if riderID == nil {
		return nil, errs.NewValueIsRequiredError("riderID")
	}

	return walletRepo.GetByOwner(ctx, *riderID)
}
