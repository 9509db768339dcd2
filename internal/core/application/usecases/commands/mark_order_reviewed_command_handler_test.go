package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkOrderReviewedCommandHandler_Handle_StoreReview(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	aggregate := deliveredOrder(t, storeID, riderID)
	require.NoError(t, aggregate.ConfirmReceipt(storeID))

	cmd, err := commands.NewMarkOrderReviewedCommand(aggregate.ID(), storeID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkOrderReviewedCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.StoreReviewed())
	assert.False(t, aggregate.RiderReviewed())
}

func TestMarkOrderReviewedCommandHandler_Handle_BeforeCompletion(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	aggregate := deliveredOrder(t, storeID, riderID)

	cmd, err := commands.NewMarkOrderReviewedCommand(aggregate.ID(), storeID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkOrderReviewedCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkOrderReviewedCommandHandler_Handle_Stranger(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	stranger := kernel.NewUUID()
	aggregate := deliveredOrder(t, storeID, riderID)
	require.NoError(t, aggregate.ConfirmReceipt(storeID))

	cmd, err := commands.NewMarkOrderReviewedCommand(aggregate.ID(), stranger)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkOrderReviewedCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}
