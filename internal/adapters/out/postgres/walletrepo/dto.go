// Package walletrepo provides data transfer objects and mapping functions for wallet persistence.
// This package implements the repository pattern for the wallet domain aggregate, handling
// the conversion between domain entities and database representations.
package walletrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
)

// WalletDTO represents the database structure for persisting wallet aggregates.
// Each user owns at most one wallet, enforced by the unique owner index.
// Monetary amounts use numeric columns so no precision is lost.
type WalletDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Balance      decimal.Decimal `gorm:"type:numeric(18,2)"`
	EscrowHeld   decimal.Decimal `gorm:"type:numeric(18,2)"`
	Transactions []TransactionDTO `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for wallet entities.
func (WalletDTO) TableName() string {
	return "wallets"
}

// TransactionDTO represents one immutable ledger entry. Rows are only ever
// inserted, never updated or deleted.
type TransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID    uuid.UUID       `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2)"`
	Direction   string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	Timestamp   time.Time       `gorm:"index"`
}

// TableName specifies the database table name for ledger entries.
func (TransactionDTO) TableName() string {
	return "transactions"
}

// fromDomain converts a wallet domain aggregate to its database representation.
func fromDomain(aggregate *wallet.Wallet) WalletDTO {
	transactions := make([]TransactionDTO, 0, len(aggregate.Transactions()))
	for _, record := range aggregate.Transactions() {
		transactions = append(transactions, TransactionDTO{
			ID:          record.ID().Bytes(),
			WalletID:    aggregate.ID().Bytes(),
			Amount:      record.Amount().Decimal(),
			Direction:   record.Direction().String(),
			Description: record.Description(),
			Timestamp:   record.Timestamp(),
		})
	}

	return WalletDTO{
		ID:           aggregate.ID().Bytes(),
		OwnerID:      aggregate.OwnerID().Bytes(),
		Balance:      aggregate.Balance().Decimal(),
		EscrowHeld:   aggregate.EscrowHeld().Decimal(),
		Transactions: transactions,
	}
}

// toDomain converts a database DTO to a wallet domain aggregate.
// Transactions must arrive newest first, as RestoreWallet expects.
func toDomain(dto WalletDTO) (*wallet.Wallet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewMoney(dto.Balance)
	if err != nil {
		return nil, err
	}

	escrowHeld, err := kernel.NewMoney(dto.EscrowHeld)
	if err != nil {
		return nil, err
	}

	transactions := make([]wallet.Transaction, 0, len(dto.Transactions))
	for _, recordDTO := range dto.Transactions {
		record, recordErr := transactionToDomain(recordDTO)
		if recordErr != nil {
			return nil, recordErr
		}
		transactions = append(transactions, record)
	}

	return wallet.RestoreWallet(id, ownerID, balance, escrowHeld, transactions)
}

func transactionToDomain(dto TransactionDTO) (wallet.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return wallet.Transaction{}, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return wallet.Transaction{}, err
	}

	direction, err := wallet.DirectionFromString(dto.Direction)
	if err != nil {
		return wallet.Transaction{}, err
	}

	return wallet.NewTransaction(id, amount, direction, dto.Description, dto.Timestamp)
}
