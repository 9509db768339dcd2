package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDepositEscrowCommandHandler_Handle_StoreDepositsFirst(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	aggregate := awaitingEscrowOrder(t, storeID, riderID)
	storeWallet := fundedWallet(t, storeID, "1000", "")

	cmd, err := commands.NewDepositEscrowCommand(aggregate.ID(), storeID, commands.PartyStore)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		walletRepo.On("GetByOwner", ctx, storeID).Return(storeWallet, nil).Once(),
		walletRepo.On("Update", ctx, storeWallet).Return(nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("WalletRepository").Return(walletRepo).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishEscrowPaid", ctx,
		mock.MatchedBy(func(e ports.EscrowPaidEvent) bool {
			return e.Party == "STORE" && e.Amount == money(t, "8").String()
		})).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDepositEscrowCommandHandler(factory, publisher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)

	// The fee moved from balance to escrow and the gate stays half-open.
	assert.True(t, storeWallet.Balance().IsEqual(money(t, "992")))
	assert.True(t, storeWallet.EscrowHeld().IsEqual(money(t, "8")))
	assert.Equal(t, order.AwaitingEscrow, aggregate.Status())
	assert.True(t, aggregate.StoreEscrowFunded())
	assert.False(t, aggregate.RiderEscrowFunded())

	// The deposit itself is announced, but there is no status change yet.
	publisher.AssertExpectations(t)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	walletRepo.AssertExpectations(t)
}

func TestDepositEscrowCommandHandler_Handle_SecondDepositOpensGate(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	aggregate := awaitingEscrowOrder(t, storeID, riderID)
	require.NoError(t, aggregate.FundStoreEscrow())
	riderWallet := fundedWallet(t, riderID, "500", "")

	cmd, err := commands.NewDepositEscrowCommand(aggregate.ID(), riderID, commands.PartyRider)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		walletRepo.On("GetByOwner", ctx, riderID).Return(riderWallet, nil).Once(),
		walletRepo.On("Update", ctx, riderWallet).Return(nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("WalletRepository").Return(walletRepo).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishEscrowPaid", ctx,
		mock.MatchedBy(func(e ports.EscrowPaidEvent) bool {
			return e.Party == "RIDER" && e.Amount == money(t, "100").String()
		})).Return(nil).Once()
	publisher.On("PublishOrderStatusChanged", ctx,
		mock.MatchedBy(func(e ports.OrderStatusChangedEvent) bool {
			return e.Status == "READY_FOR_PICKUP"
		})).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDepositEscrowCommandHandler(factory, publisher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)

	// The collateral equals the product price.
	assert.True(t, riderWallet.Balance().IsEqual(money(t, "400")))
	assert.True(t, riderWallet.EscrowHeld().IsEqual(money(t, "100")))
	assert.Equal(t, order.ReadyForPickup, aggregate.Status())
	publisher.AssertExpectations(t)
}

func TestDepositEscrowCommandHandler_Handle_InsufficientFunds(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	aggregate := awaitingEscrowOrder(t, storeID, riderID)

	// Rider cannot cover the 100 collateral.
	riderWallet, err := wallet.NewWallet(kernel.NewUUID(), riderID, money(t, "60"), time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewDepositEscrowCommand(aggregate.ID(), riderID, commands.PartyRider)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		walletRepo.On("GetByOwner", ctx, riderID).Return(riderWallet, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("WalletRepository").Return(walletRepo).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewDepositEscrowCommandHandler(factory, publisher, discardLogger())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	assert.True(t, riderWallet.Balance().IsEqual(money(t, "60")))
	walletRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishEscrowPaid", mock.Anything, mock.Anything)
}

func TestDepositEscrowCommandHandler_Handle_WrongActor(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	stranger := kernel.NewUUID()
	aggregate := awaitingEscrowOrder(t, storeID, riderID)

	cmd, err := commands.NewDepositEscrowCommand(aggregate.ID(), stranger, commands.PartyStore)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("WalletRepository").Return(walletRepo).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDepositEscrowCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	walletRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)
}

func TestDepositEscrowCommandHandler_Handle_DoubleDeposit(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	aggregate := awaitingEscrowOrder(t, storeID, riderID)
	require.NoError(t, aggregate.FundStoreEscrow())

	cmd, err := commands.NewDepositEscrowCommand(aggregate.ID(), storeID, commands.PartyStore)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	walletRepo := new(MockWalletRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("WalletRepository").Return(walletRepo).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDepositEscrowCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)

	// The wallet was never touched.
	walletRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)
	walletRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
