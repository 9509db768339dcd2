// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the user directory and the
// event publisher. Implementations live under adapters.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Within a unit of work, Get acquires a row lock on the order so concurrent
// commands targeting the same order serialize and each sees the previous
// command's committed state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// bid book and flags.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, locking the
	// row for the duration of the surrounding transaction.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInBiddingStatus retrieves every order still open for bids,
	// newest first. Backs the marketplace feed riders browse.
	GetAllInBiddingStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllStuckInAwaitingEscrow retrieves orders sitting in AwaitingEscrow
	// with both escrow flags already set. Such orders should not exist; the
	// reconciliation job advances them.
	GetAllStuckInAwaitingEscrow(ctx context.Context) ([]*order.Order, error)
}
