package walletrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new wallet to the database, including the opening transaction.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the wallet's balance and escrow columns and inserts any ledger
// entries that are not persisted yet. Ledger rows are immutable, so existing
// rows are left untouched.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&WalletDTO{}).
		Where("id = ?", dto.ID).
		Select("Balance", "EscrowHeld").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Transactions) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Transactions).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a wallet by ID together with its ledger, newest entry first.
// Acquires a FOR UPDATE lock on the wallet row.
func (r *GormWalletRepository) Get(ctx context.Context, id kernel.UUID) (*wallet.Wallet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "id = ?", id.Bytes(), id.String(), "walletId")
}

// GetByOwner retrieves the wallet belonging to a user.
// Acquires a FOR UPDATE lock on the wallet row.
func (r *GormWalletRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "owner_id = ?", ownerID.Bytes(), ownerID.String(), "ownerId")
}

func (r *GormWalletRepository) getOne(
	ctx context.Context,
	condition string,
	value any,
	lookupID, paramName string,
) (*wallet.Wallet, error) {
	var dto WalletDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		First(&dto, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paramName, lookupID)
		}
		return nil, err
	}

	return toDomain(dto)
}
