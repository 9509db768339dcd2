package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// PlaceBidCommandHandler handles rider bids on open orders.
// The order row is locked for the duration of the transaction, so two riders
// bidding at once serialize and both bids land in the book.
type PlaceBidCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewPlaceBidCommandHandler creates a handler for bid placement operations.
func NewPlaceBidCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PlaceBidCommandHandler {
	return PlaceBidCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the bid placement command.
// Verifies the acting user holds the rider role, then delegates the bid book
// rules (amend in place, bidding window, no self-bids) to the order aggregate.
// Publishes a BidPlacedEvent after commit.
func (h PlaceBidCommandHandler) Handle(ctx context.Context, cmd PlaceBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	user, err := h.users.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if user.Role != ports.UserRoleRider {
		return errs.NewForbiddenError(cmd.RiderID().String(), "bid on orders")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	bidsBefore := len(aggregate.Bids())

	bid, err := aggregate.PlaceBid(cmd.RiderID(), cmd.Amount(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	amended := len(aggregate.Bids()) == bidsBefore
	publishBidPlaced(ctx, h.publisher, h.logger, aggregate, bid, amended)

	return nil
}
