package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DepositEscrowCommandHandler handles escrow deposits for both sides of an
// order. The order row lock serializes the two deposits, so whichever lands
// second sees the first side's flag and opens the gate to ReadyForPickup.
//
// The wallet debit and the order flag flip commit together or not at all:
// a failed deposit (insufficient funds, wrong phase, double deposit) leaves
// both the wallet and the order untouched.
type DepositEscrowCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDepositEscrowCommandHandler creates a handler for escrow deposit operations.
func NewDepositEscrowCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DepositEscrowCommandHandler {
	return DepositEscrowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the escrow deposit command.
// Locks the order, verifies the actor is the party's rightful user, flips the
// order's escrow flag, and moves the required amount from the actor's wallet
// balance into escrow. After commit, publishes an EscrowPaidEvent for the
// deposit, plus the status change if the gate opened.
func (h DepositEscrowCommandHandler) Handle(ctx context.Context, cmd DepositEscrowCommand) error {
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
	walletRepo := uow.WalletRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	amount, description, err := h.depositFor(aggregate, cmd)
	if err != nil {
		return err
	}

	if cmd.Party() == PartyStore {
		err = aggregate.FundStoreEscrow()
	} else {
		err = aggregate.FundRiderEscrow()
	}
	if err != nil {
		return err
	}

	depositorWallet, err := walletRepo.GetByOwner(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if err = depositorWallet.MoveToEscrow(amount, description, time.Now().UTC()); err != nil {
		return err
	}

	if err = walletRepo.Update(ctx, depositorWallet); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEscrowPaid(ctx, h.publisher, h.logger, aggregate, string(cmd.Party()), amount)

	if aggregate.Status() == order.ReadyForPickup {
		publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	}

	return nil
}

// depositFor resolves the amount and ledger description of the deposit and
// checks that the actor is the party they claim to be.
func (h DepositEscrowCommandHandler) depositFor(
	aggregate *order.Order,
	cmd DepositEscrowCommand,
) (amount kernel.Money, description string, err error) {
	switch cmd.Party() {
	case PartyStore:
		if !cmd.ActorID().IsEqual(aggregate.StoreID()) {
			return amount, "", errs.NewForbiddenError(cmd.ActorID().String(), "deposit the store escrow")
		}

		fee, fromBid := aggregate.DeliveryFee()
		if !fromBid {
			h.logger.Warn("order has no selected bid, using fee ceiling for escrow deposit",
				"orderId", aggregate.ID().String())
		}
		return fee, fmt.Sprintf("Escrow deposit for %s", aggregate.ProductName()), nil

	case PartyRider:
		riderID := aggregate.RiderID()
		if riderID == nil || !cmd.ActorID().IsEqual(*riderID) {
			return amount, "", errs.NewForbiddenError(cmd.ActorID().String(), "deposit the rider collateral")
		}

		return aggregate.ProductPrice(),
			fmt.Sprintf("Product collateral for %s", aggregate.ProductName()), nil

	default:
		return amount, "", errs.NewValueIsInvalidError("party")
	}
}
