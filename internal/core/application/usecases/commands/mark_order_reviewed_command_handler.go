package commands

import (
	"context"
)

// MarkOrderReviewedCommandHandler flips the reviewed flag for one side of a
// completed order.
type MarkOrderReviewedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkOrderReviewedCommandHandler creates a handler for review flag operations.
func NewMarkOrderReviewedCommandHandler(uowFactory OrderUoWFactory) MarkOrderReviewedCommandHandler {
	return MarkOrderReviewedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review flag command.
// The aggregate rejects reviews on orders that are not Completed and reviews
// from users who are neither the store nor the assigned rider.
func (h MarkOrderReviewedCommandHandler) Handle(ctx context.Context, cmd MarkOrderReviewedCommand) error {
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

	if err = aggregate.MarkReviewed(cmd.ActorID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
