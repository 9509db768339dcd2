// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves every order still open for bidding.
// Backs the marketplace feed riders browse when looking for work.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve open orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s for %s (%d bids)\n", o.ProductName, o.ProductPrice, o.BidsCount)
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve all open orders.
// This is a parameterless query that fetches the complete bidding feed.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse represents one open order in the read model.
// BidsCount lets the feed show demand without loading the bid book.
type GetOpenOrdersQueryResponse struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	ProductName     string
	ProductPrice    kernel.Money
	FeeCeiling      kernel.Money
	DeliveryAddress string
	ClientName      string
	BidsCount       int
	CreatedAt       time.Time
}
