package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stuckOrder restores an order frozen in AwaitingEscrow with both escrow
// flags set, the shape the reconciliation sweep looks for.
func stuckOrder(t *testing.T) *order.Order {
	t.Helper()

	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	bidID := kernel.NewUUID()

	o, err := order.RestoreOrder(
		kernel.NewUUID(), storeID,
		"Birthday cake", money(t, "100"), money(t, "15"),
		"12 Main St", "Alice", "+15550100",
		order.AwaitingEscrow,
		nil,
		&bidID, &riderID,
		true, true,
		false, false,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestReconcileEscrowCommandHandler_Handle_HealsStuckOrders(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewReconcileEscrowCommand()
	aggregate := stuckOrder(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllStuckInAwaitingEscrow", ctx).Return([]*order.Order{aggregate}, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderStatusChanged", ctx,
		mock.MatchedBy(func(e ports.OrderStatusChangedEvent) bool {
			return e.OrderID == aggregate.ID().String() && e.Status == "READY_FOR_PICKUP"
		})).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileEscrowCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, aggregate.Status())
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReconcileEscrowCommandHandler_Handle_NothingToHeal(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewReconcileEscrowCommand()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllStuckInAwaitingEscrow", ctx).Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewReconcileEscrowCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything)
}

func TestReconcileEscrowCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReconcileEscrowCommand{} // not constructed properly

	h := commands.NewReconcileEscrowCommandHandler(
		new(MockOrderUoWFactory), new(MockEventPublisher), discardLogger())
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
}
