package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetWalletStatementQueryIsNotConstructed = errors.New(
	"GetWalletStatementQuery must be created via NewGetWalletStatementQuery constructor",
)

// GetWalletStatementQuery retrieves a user's wallet statement: current
// balance, funds held in escrow, and the transaction history newest first.
type GetWalletStatementQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletStatementQuery creates a query for the given user's statement.
func NewGetWalletStatementQuery(ownerID kernel.UUID) (GetWalletStatementQuery, error) {
	query := GetWalletStatementQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOwnerID(ownerID); err != nil {
		return GetWalletStatementQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletStatementQueryIsNotConstructed)
}

// OwnerID returns the user whose statement is requested.
func (q GetWalletStatementQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q *GetWalletStatementQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	q.ownerID = ownerID
	return nil
}

// TransactionResponse is one ledger entry in the statement read model.
type TransactionResponse struct {
	ID          kernel.UUID
	Amount      kernel.Money
	Direction   string
	Description string
	Timestamp   time.Time
}

// GetWalletStatementQueryResponse represents the wallet statement read model.
type GetWalletStatementQueryResponse struct {
	WalletID     kernel.UUID
	OwnerID      kernel.UUID
	Balance      kernel.Money
	EscrowHeld   kernel.Money
	Transactions []TransactionResponse
}
