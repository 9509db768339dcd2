package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WalletRepository defines the persistence contract for wallet aggregates.
// Within a unit of work, lookups acquire a row lock on the wallet so balance
// mutations on the same wallet serialize.
type WalletRepository interface {
	// Add persists a new wallet aggregate, including the opening balance
	// transaction if any.
	Add(ctx context.Context, aggregate *wallet.Wallet) error

	// Update persists changes to an existing wallet aggregate and appends
	// its new transactions.
	Update(ctx context.Context, aggregate *wallet.Wallet) error

	// Get retrieves a wallet by its unique identifier, locking the row for
	// the duration of the surrounding transaction.
	Get(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error)

	// GetByOwner retrieves the wallet belonging to a user, locking the row
	// for the duration of the surrounding transaction. Every user has at
	// most one wallet.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error)
}
