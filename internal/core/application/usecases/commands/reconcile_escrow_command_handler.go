package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ReconcileEscrowCommandHandler advances orders stuck in AwaitingEscrow whose
// escrow flags are both set. No wallet logic runs here; the deposits already
// happened, only the status write was lost.
type ReconcileEscrowCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReconcileEscrowCommandHandler creates a handler for the escrow sweep.
func NewReconcileEscrowCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReconcileEscrowCommandHandler {
	return ReconcileEscrowCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the escrow sweep command.
// All stuck orders found in one sweep advance within a single transaction.
func (h ReconcileEscrowCommandHandler) Handle(ctx context.Context, cmd ReconcileEscrowCommand) error {
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

	stuck, err := orderRepo.GetAllStuckInAwaitingEscrow(ctx)
	if err != nil {
		return err
	}
	if len(stuck) == 0 {
		return uow.Commit(ctx)
	}

	healed := make([]*order.Order, 0, len(stuck))
	for _, aggregate := range stuck {
		if !aggregate.ReconcileEscrowGate() {
			continue
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		h.logger.Warn("healed order stuck in awaiting escrow",
			"orderId", aggregate.ID().String())
		healed = append(healed, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range healed {
		publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	}

	return nil
}
