package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// GetWalletStatementQueryHandler retrieves wallet statements from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetWalletStatementQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletStatementQueryHandler creates a handler for wallet statement queries.
// Requires a GORM database connection for query execution.
func NewGetWalletStatementQueryHandler(db *gorm.DB) GetWalletStatementQueryHandler {
	return GetWalletStatementQueryHandler{db: db}
}

// Handle executes the query to retrieve the user's wallet statement.
// Returns ObjectNotFoundError if the user has no wallet.
func (h GetWalletStatementQueryHandler) Handle(
	ctx context.Context,
	query GetWalletStatementQuery,
) (GetWalletStatementQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	response, err := h.loadWallet(ctx, query.OwnerID())
	if err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	response.Transactions, err = h.loadTransactions(ctx, response.WalletID)
	if err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	return response, nil
}

func (h GetWalletStatementQueryHandler) loadWallet(
	ctx context.Context,
	ownerID kernel.UUID,
) (GetWalletStatementQueryResponse, error) {
	var response GetWalletStatementQueryResponse
	var id uuid.UUID
	var balance, escrowHeld decimal.Decimal

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			balance,
			escrow_held
		FROM wallets
		WHERE owner_id = ?
	`, ownerID.Bytes()).Row()

	err := row.Scan(&id, &balance, &escrowHeld)
	if errors.Is(err, sql.ErrNoRows) {
		return response, errs.NewObjectNotFoundError("ownerId", ownerID.String())
	}
	if err != nil {
		return response, err
	}

	walletID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return response, err
	}
	response.WalletID = walletID
	response.OwnerID = ownerID

	if response.Balance, err = kernel.NewMoney(balance); err != nil {
		return response, err
	}
	if response.EscrowHeld, err = kernel.NewMoney(escrowHeld); err != nil {
		return response, err
	}

	return response, nil
}

func (h GetWalletStatementQueryHandler) loadTransactions(
	ctx context.Context,
	walletID kernel.UUID,
) ([]TransactionResponse, error) {
	transactions := make([]TransactionResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			amount,
			direction,
			description,
			timestamp
		FROM transactions
		WHERE wallet_id = ?
		ORDER BY timestamp DESC
	`, walletID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record TransactionResponse
		var id uuid.UUID
		var amount decimal.Decimal

		err = rows.Scan(
			&id,
			&amount,
			&record.Direction,
			&record.Description,
			&record.Timestamp,
		)
		if err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ID = recordID

		if record.Amount, err = kernel.NewMoney(amount); err != nil {
			return nil, err
		}

		transactions = append(transactions, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
