// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper
// indexing for efficient querying by status and rider assignment. Monetary
// amounts use numeric columns so no precision is lost.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID           uuid.UUID       `gorm:"type:uuid;index"`
	ProductName       string          `gorm:"not null"`
	ProductPrice      decimal.Decimal `gorm:"type:numeric(18,2)"`
	FeeCeiling        decimal.Decimal `gorm:"type:numeric(18,2)"`
	DeliveryAddress   string          `gorm:"not null"`
	ClientName        string          `gorm:"not null"`
	ClientPhone       string          `gorm:"not null"`
	Status            string          `gorm:"index"`
	SelectedBidID     *uuid.UUID      `gorm:"type:uuid"`
	RiderID           *uuid.UUID      `gorm:"type:uuid;index"`
	StoreEscrowFunded bool
	RiderEscrowFunded bool
	StoreReviewed     bool
	RiderReviewed     bool
	CreatedAt         time.Time
	Bids              []BidDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// BidDTO represents one rider offer within an order's bid book.
// The (OrderID, RiderID) pair is unique: re-bidding amends the row in place.
// Placement records the position of the bid within the book at first
// placement. Reads order by it, so the book keeps its placement order even
// after an amend rewrites the row.
type BidDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;uniqueIndex:idx_bids_order_rider"`
	RiderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_bids_order_rider"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2)"`
	Placement int             `gorm:"not null"`
	Timestamp time.Time
}

// TableName specifies the database table name for bid entities.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the bid book, selection and flags.
func fromDomain(aggregate *order.Order) OrderDTO {
	var selectedBidID *uuid.UUID
	if id := aggregate.SelectedBidID(); id != nil {
		raw := id.Bytes()
		selectedBidID = &raw
	}

	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	bids := make([]BidDTO, 0, len(aggregate.Bids()))
	for i, bid := range aggregate.Bids() {
		bids = append(bids, BidDTO{
			ID:        bid.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			RiderID:   bid.RiderID().Bytes(),
			Amount:    bid.Amount().Decimal(),
			Placement: i,
			Timestamp: bid.Timestamp(),
		})
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		StoreID:           aggregate.StoreID().Bytes(),
		ProductName:       aggregate.ProductName(),
		ProductPrice:      aggregate.ProductPrice().Decimal(),
		FeeCeiling:        aggregate.FeeCeiling().Decimal(),
		DeliveryAddress:   aggregate.DeliveryAddress(),
		ClientName:        aggregate.ClientName(),
		ClientPhone:       aggregate.ClientPhone(),
		Status:            aggregate.Status().String(),
		SelectedBidID:     selectedBidID,
		RiderID:           riderID,
		StoreEscrowFunded: aggregate.StoreEscrowFunded(),
		RiderEscrowFunded: aggregate.RiderEscrowFunded(),
		StoreReviewed:     aggregate.StoreReviewed(),
		RiderReviewed:     aggregate.RiderReviewed(),
		CreatedAt:         aggregate.CreatedAt(),
		Bids:              bids,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including bid book and flags using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	productPrice, err := kernel.NewMoney(dto.ProductPrice)
	if err != nil {
		return nil, err
	}

	feeCeiling, err := kernel.NewMoney(dto.FeeCeiling)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	selectedBidID, err := optionalUUID(dto.SelectedBidID)
	if err != nil {
		return nil, err
	}

	riderID, err := optionalUUID(dto.RiderID)
	if err != nil {
		return nil, err
	}

	bids := make([]*order.Bid, 0, len(dto.Bids))
	for _, bidDTO := range dto.Bids {
		bid, bidErr := bidToDomain(bidDTO)
		if bidErr != nil {
			return nil, bidErr
		}
		bids = append(bids, bid)
	}

	return order.RestoreOrder(
		id, storeID,
		dto.ProductName, productPrice, feeCeiling,
		dto.DeliveryAddress, dto.ClientName, dto.ClientPhone,
		status,
		bids,
		selectedBidID, riderID,
		dto.StoreEscrowFunded, dto.RiderEscrowFunded,
		dto.StoreReviewed, dto.RiderReviewed,
		dto.CreatedAt,
	)
}

func bidToDomain(dto BidDTO) (*order.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return order.NewBid(id, riderID, amount, dto.Timestamp)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
