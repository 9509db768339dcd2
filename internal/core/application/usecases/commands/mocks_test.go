package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(value)
	require.NoError(t, err)
	return m
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// biddingOrder creates an order fresh out of CreateOrder, still open for bids.
func biddingOrder(t *testing.T, storeID kernel.UUID) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), storeID,
		"Birthday cake", money(t, "100"), money(t, "15"),
		"12 Main St", "Alice", "+15550100",
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

// awaitingEscrowOrder walks an order through bidding and selection.
func awaitingEscrowOrder(t *testing.T, storeID, riderID kernel.UUID) *order.Order {
	t.Helper()

	o := biddingOrder(t, storeID)
	bid, err := o.PlaceBid(riderID, money(t, "8"), time.Now())
	require.NoError(t, err)
	require.NoError(t, o.SelectBid(storeID, bid.ID()))
	return o
}

// deliveredOrder walks an order all the way to Delivered.
func deliveredOrder(t *testing.T, storeID, riderID kernel.UUID) *order.Order {
	t.Helper()

	o := awaitingEscrowOrder(t, storeID, riderID)
	require.NoError(t, o.FundStoreEscrow())
	require.NoError(t, o.FundRiderEscrow())
	require.NoError(t, o.ConfirmPickup(riderID))
	require.NoError(t, o.ConfirmDelivery(riderID))
	return o
}

// fundedWallet creates a wallet with funds already moved to escrow.
func fundedWallet(t *testing.T, ownerID kernel.UUID, opening, escrowed string) *wallet.Wallet {
	t.Helper()

	w, err := wallet.NewWallet(kernel.NewUUID(), ownerID, money(t, opening), time.Now())
	require.NoError(t, err)
	if escrowed != "" {
		require.NoError(t, w.MoveToEscrow(money(t, escrowed), "Escrow deposit", time.Now()))
	}
	return w
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInBiddingStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllStuckInAwaitingEscrow(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Add(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (ports.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.User), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderStatusChanged(
	ctx context.Context,
	event ports.OrderStatusChangedEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBidPlaced(
	ctx context.Context,
	event ports.BidPlacedEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishEscrowPaid(
	ctx context.Context,
	event ports.EscrowPaidEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWalletUoWFactory struct{ mock.Mock }

func (m *MockWalletUoWFactory) Create() commands.WalletUoW {
	args := m.Called()
	return args.Get(0).(commands.WalletUoW)
}
