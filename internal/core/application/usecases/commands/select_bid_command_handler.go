package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// SelectBidCommandHandler handles winning bid selection.
// The row lock taken by Get serializes concurrent selection attempts on the
// same order; the loser of the race sees the already-selected order and
// fails with an invalid transition.
type SelectBidCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewSelectBidCommandHandler creates a handler for bid selection operations.
func NewSelectBidCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SelectBidCommandHandler {
	return SelectBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the bid selection command.
// Authorization (store only) and the bidding-phase guard live in the order
// aggregate; this handler supplies the transaction and publishes the status
// change after commit.
func (h SelectBidCommandHandler) Handle(ctx context.Context, cmd SelectBidCommand) error {
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

	if err = aggregate.SelectBid(cmd.ActorID(), cmd.BidID()); err != nil {
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
