package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrBidIsNotConstructed is returned when a Bid instance was not created
// through the NewBid factory method.
var ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")

// Bid is a rider's offer to deliver an order for a proposed fee.
//
// A bid belongs to exactly one order. There is at most one active bid per
// rider per order: a rider bidding again amends the existing bid in place
// rather than creating a duplicate. Bids are mutable only while the owning
// order is in Bidding; the order enforces that through its own guards.
type Bid struct {
	// id is the unique identifier for the bid
	id kernel.UUID

	// riderID is the bidding rider
	riderID kernel.UUID

	// amount is the proposed delivery fee
	amount kernel.Money

	// timestamp is when the bid was placed or last amended
	timestamp time.Time

	// isConstructed ensures the bid was created via NewBid
	isConstructed bool
}

// NewBid creates a bid with validation.
// The fee must be strictly positive and both identifiers valid.
func NewBid(id, riderID kernel.UUID, amount kernel.Money, timestamp time.Time) (*Bid, error) {
	if err := errors.Join(id.Validate(), riderID.Validate(), validateFee(amount)); err != nil {
		return nil, err
	}

	return &Bid{
		id:            id,
		riderID:       riderID,
		amount:        amount,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// Validate ensures the Bid instance was properly constructed through NewBid.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// RiderID returns the identifier of the bidding rider.
func (b *Bid) RiderID() kernel.UUID {
	return b.riderID
}

// Amount returns the proposed delivery fee.
func (b *Bid) Amount() kernel.Money {
	return b.amount
}

// Timestamp returns when the bid was placed or last amended.
func (b *Bid) Timestamp() time.Time {
	return b.timestamp
}

// amend updates the fee and timestamp in place. Only the owning order calls
// this, and only while it is still in Bidding.
func (b *Bid) amend(amount kernel.Money, timestamp time.Time) error {
	if err := validateFee(amount); err != nil {
		return err
	}

	b.amount = amount
	b.timestamp = timestamp
	return nil
}

func validateFee(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"bid amount",
			fmt.Errorf("%s is not greater than 0", amount.String()),
		)
	}
	return nil
}
