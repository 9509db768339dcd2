package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for posting orders.
// Only users with the store role may post; the new order opens in bidding.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	users      ports.UserDirectory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	users ports.UserDirectory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order creation command.
// Verifies the acting user holds the store role, persists the order in
// bidding status, and announces it to the broker after commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	user, err := h.users.Get(ctx, cmd.StoreID())
	if err != nil {
		return err
	}
	if user.Role != ports.UserRoleStore {
		return errs.NewForbiddenError(cmd.StoreID().String(), "post orders")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.StoreID(),
		cmd.ProductName(), cmd.ProductPrice(), cmd.FeeCeiling(),
		cmd.DeliveryAddress(), cmd.ClientName(), cmd.ClientPhone(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}
