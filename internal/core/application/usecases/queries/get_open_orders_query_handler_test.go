package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

type GetOpenOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOpenOrdersQueryHandler
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.BidDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOpenOrdersQueryHandler(db)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyBiddingOrdersNewestFirst() {
	base := time.Now().UTC().Add(-time.Hour)

	olderOrder := suite.createOpenOrder("Birthday cake", base)
	newerOrder := suite.createOpenOrder("Flowers", base.Add(10*time.Minute))

	// Bids on the newer order; the feed reports their count
	_, err := newerOrder.PlaceBid(kernel.NewUUID(), suite.money("8"), time.Now().UTC())
	suite.Require().NoError(err)
	_, err = newerOrder.PlaceBid(kernel.NewUUID(), suite.money("9"), time.Now().UTC())
	suite.Require().NoError(err)

	// A selected order must not appear in the feed
	selectedOrder := suite.createOpenOrder("Groceries", base.Add(20*time.Minute))
	bid, err := selectedOrder.PlaceBid(kernel.NewUUID(), suite.money("8"), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(selectedOrder.SelectBid(selectedOrder.StoreID(), bid.ID()))

	suite.saveOrders(olderOrder, newerOrder, selectedOrder)

	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(newerOrder.ID(), result[0].ID)
	suite.Equal("Flowers", result[0].ProductName)
	suite.Equal(2, result[0].BidsCount)

	suite.Equal(olderOrder.ID(), result[1].ID)
	suite.Equal("Birthday cake", result[1].ProductName)
	suite.Equal(0, result[1].BidsCount)
	suite.Equal(olderOrder.StoreID(), result[1].StoreID)
	suite.True(suite.money("25").IsEqual(result[1].ProductPrice))
	suite.True(suite.money("10").IsEqual(result[1].FeeCeiling))
	suite.Equal("12 Main St", result[1].DeliveryAddress)
	suite.Equal("Alice", result[1].ClientName)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOpenOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOpenOrdersQuery constructor")
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) createOpenOrder(
	productName string, createdAt time.Time,
) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		productName,
		suite.money("25"), suite.money("10"),
		"12 Main St", "Alice", "+15550100",
		createdAt,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) saveOrders(orders ...*order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	for _, o := range orders {
		suite.Require().NoError(repo.Add(context.Background(), o))
	}
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) money(value string) kernel.Money {
	m, err := kernel.NewMoneyFromString(value)
	suite.Require().NoError(err)
	return m
}

func TestGetOpenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOpenOrdersQueryHandlerTestSuite))
}

// mockAggregateTracker is a no-op implementation since we don't need
// aggregate tracking in query tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}
