package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the delivery marketplace. It owns the
// lifecycle status, the bid book, the dual escrow-funded flags and the
// review flags, and mediates every mutation of them.
//
// Order follows these invariants:
//   - Status transitions are strictly forward, no skipping, no reverse
//   - At most one active bid per rider; re-bidding amends in place
//   - Bids freeze the moment the order leaves Bidding
//   - ReadyForPickup is reached if and only if both escrow flags are true,
//     regardless of which side funded first
//   - Completed is terminal; a completed order is never deleted
//
// The wallet side of escrow and settlement lives in the wallet aggregate;
// the application layer coordinates the two under one transaction.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// storeID is the store that posted the order
	storeID kernel.UUID

	// productName describes the goods to deliver
	productName string

	// productPrice is the value of the goods; doubles as the rider's
	// collateral requirement
	productPrice kernel.Money

	// feeCeiling is the store's offered delivery fee ceiling, used as the
	// settlement fallback when no bid was ever selected
	feeCeiling kernel.Money

	// deliveryAddress is the destination
	deliveryAddress string

	// clientName and clientPhone identify the receiving client
	clientName  string
	clientPhone string

	// status is the current state in the order lifecycle
	status Status

	// bids holds rider offers in placement order
	bids []*Bid

	// selectedBidID is the winning bid (nil until selection)
	selectedBidID *kernel.UUID

	// riderID is the assigned rider (nil until selection)
	riderID *kernel.UUID

	// storeEscrowFunded and riderEscrowFunded are the two independent
	// halves of the escrow gate
	storeEscrowFunded bool
	riderEscrowFunded bool

	// storeReviewed and riderReviewed record whether each party submitted
	// a review after completion
	storeReviewed bool
	riderReviewed bool

	// createdAt is when the order was posted
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an order in Bidding status with an empty bid book.
// All descriptive fields are required; productPrice and feeCeiling must be
// strictly positive.
func NewOrder(
	id, storeID kernel.UUID,
	productName string,
	productPrice, feeCeiling kernel.Money,
	deliveryAddress, clientName, clientPhone string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Bidding,
		bids:          make([]*Bid, 0),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreID(storeID),
		o.setProductName(productName),
		o.setProductPrice(productPrice),
		o.setFeeCeiling(feeCeiling),
		o.setDeliveryAddress(deliveryAddress),
		o.setClient(clientName, clientPhone),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its bid
// book, selection, escrow flags and review flags. The status must be valid
// and consistent with the assignment: only an unselected order may lack a
// rider, and only a Bidding order may be unselected.
func RestoreOrder(
	id, storeID kernel.UUID,
	productName string,
	productPrice, feeCeiling kernel.Money,
	deliveryAddress, clientName, clientPhone string,
	status Status,
	bids []*Bid,
	selectedBidID, riderID *kernel.UUID,
	storeEscrowFunded, riderEscrowFunded bool,
	storeReviewed, riderReviewed bool,
	createdAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, storeID, productName, productPrice, feeCeiling,
		deliveryAddress, clientName, clientPhone, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if status != Bidding && (selectedBidID == nil || riderID == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s requires a selected bid and an assigned rider", status),
		)
	}

	if bids != nil {
		o.bids = bids
	}
	o.status = status
	o.selectedBidID = selectedBidID
	o.riderID = riderID
	o.storeEscrowFunded = storeEscrowFunded
	o.riderEscrowFunded = riderEscrowFunded
	o.storeReviewed = storeReviewed
	o.riderReviewed = riderReviewed

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the store that posted the order.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// ProductName returns the description of the goods.
func (o *Order) ProductName() string {
	return o.productName
}

// ProductPrice returns the value of the goods, which is also the rider's
// collateral requirement.
func (o *Order) ProductPrice() kernel.Money {
	return o.productPrice
}

// FeeCeiling returns the store's offered delivery fee ceiling.
func (o *Order) FeeCeiling() kernel.Money {
	return o.feeCeiling
}

// DeliveryAddress returns the destination address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// ClientName returns the receiving client's name.
func (o *Order) ClientName() string {
	return o.clientName
}

// ClientPhone returns the receiving client's phone contact.
func (o *Order) ClientPhone() string {
	return o.clientPhone
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Bids returns the bid book in placement order.
// The slice is a copy; the bids themselves are shared references owned by
// the aggregate.
func (o *Order) Bids() []*Bid {
	out := make([]*Bid, len(o.bids))
	copy(out, o.bids)
	return out
}

// SelectedBidID returns the winning bid's ID, or nil before selection.
func (o *Order) SelectedBidID() *kernel.UUID {
	return o.selectedBidID
}

// RiderID returns the assigned rider's ID, or nil before selection.
func (o *Order) RiderID() *kernel.UUID {
	return o.riderID
}

// StoreEscrowFunded reports whether the store's escrow deposit is locked.
func (o *Order) StoreEscrowFunded() bool {
	return o.storeEscrowFunded
}

// RiderEscrowFunded reports whether the rider's collateral is locked.
func (o *Order) RiderEscrowFunded() bool {
	return o.riderEscrowFunded
}

// StoreReviewed reports whether the store submitted its review.
func (o *Order) StoreReviewed() bool {
	return o.storeReviewed
}

// RiderReviewed reports whether the rider submitted their review.
func (o *Order) RiderReviewed() bool {
	return o.riderReviewed
}

// CreatedAt returns when the order was posted.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PlaceBid records a rider's offer, or amends the rider's existing offer in
// place when they already have one on this order. Returns the affected bid.
//
// Guards:
//   - the order must still be in Bidding (InvalidState otherwise)
//   - the store cannot bid on its own order (Forbidden)
//   - the fee must be strictly positive
func (o *Order) PlaceBid(riderID kernel.UUID, amount kernel.Money, now time.Time) (*Bid, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}
	if err := o.status.ValidateBidding(); err != nil {
		return nil, err
	}
	if riderID.IsEqual(o.storeID) {
		return nil, errs.NewForbiddenError(riderID.String(), "bid on own order")
	}

	for _, b := range o.bids {
		if b.RiderID().IsEqual(riderID) {
			if err := b.amend(amount, now); err != nil {
				return nil, err
			}
			return b, nil
		}
	}

	bid, err := NewBid(kernel.NewUUID(), riderID, amount, now)
	if err != nil {
		return nil, err
	}

	o.bids = append(o.bids, bid)
	return bid, nil
}

// BidByID returns the bid with the given ID, or an ObjectNotFoundError if no
// such bid belongs to this order.
func (o *Order) BidByID(bidID kernel.UUID) (*Bid, error) {
	for _, b := range o.bids {
		if b.ID().IsEqual(bidID) {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("bidId", bidID.String())
}

// SelectBid locks in the winning bid: the chosen fee becomes the order's
// delivery fee, the bidding rider is assigned, and the status moves to
// AwaitingEscrow. The bid book freezes.
//
// Guards:
//   - only the store may select (Forbidden)
//   - the order must be in Bidding; a second selection attempt on an
//     already-selected order fails with InvalidTransition
//   - the bid must belong to this order (NotFound)
func (o *Order) SelectBid(actorID, bidID kernel.UUID) error {
	if !actorID.IsEqual(o.storeID) {
		return errs.NewForbiddenError(actorID.String(), "select bid")
	}

	newStatus, err := o.status.SelectBid()
	if err != nil {
		return err
	}

	bid, err := o.BidByID(bidID)
	if err != nil {
		return err
	}

	selectedID := bid.ID()
	riderID := bid.RiderID()
	o.selectedBidID = &selectedID
	o.riderID = &riderID
	o.status = newStatus
	return nil
}

// FundStoreEscrow marks the store side of the escrow gate as funded.
// When the rider side is already funded the order advances to
// ReadyForPickup; otherwise it stays in AwaitingEscrow with the flag set.
//
// Guards:
//   - the order must be in AwaitingEscrow (InvalidTransition)
//   - the store must not already be funded (InvalidState)
func (o *Order) FundStoreEscrow() error {
	if err := o.status.ValidateDeposit(); err != nil {
		return err
	}
	if o.storeEscrowFunded {
		return errs.NewInvalidStateError(o.status.String(), "fund store escrow twice")
	}

	o.storeEscrowFunded = true
	o.refreshEscrowGate()
	return nil
}

// FundRiderEscrow marks the rider side of the escrow gate as funded.
// Symmetric to FundStoreEscrow; the order of funding is irrelevant.
func (o *Order) FundRiderEscrow() error {
	if err := o.status.ValidateDeposit(); err != nil {
		return err
	}
	if o.riderEscrowFunded {
		return errs.NewInvalidStateError(o.status.String(), "fund rider escrow twice")
	}

	o.riderEscrowFunded = true
	o.refreshEscrowGate()
	return nil
}

// ReconcileEscrowGate re-evaluates the escrow gate and reports whether the
// order advanced. Used by the periodic reconciliation pass to self-heal an
// order stuck in AwaitingEscrow despite both flags being true, without
// re-running any wallet logic.
func (o *Order) ReconcileEscrowGate() bool {
	if o.status != AwaitingEscrow {
		return false
	}
	before := o.status
	o.refreshEscrowGate()
	return o.status != before
}

// refreshEscrowGate advances to ReadyForPickup once both sides are funded.
func (o *Order) refreshEscrowGate() {
	if o.storeEscrowFunded && o.riderEscrowFunded {
		o.status = ReadyForPickup
	}
}

// ConfirmPickup records that the assigned rider collected the product.
//
// Guards:
//   - the actor must be the assigned rider (Forbidden)
//   - the order must be in ReadyForPickup (InvalidTransition)
func (o *Order) ConfirmPickup(actorID kernel.UUID) error {
	if err := o.requireAssignedRider(actorID, "confirm pickup"); err != nil {
		return err
	}

	newStatus, err := o.status.ConfirmPickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ConfirmDelivery records that the assigned rider handed the product to the
// client.
//
// Guards:
//   - the actor must be the assigned rider (Forbidden)
//   - the order must be in InTransit (InvalidTransition)
func (o *Order) ConfirmDelivery(actorID kernel.UUID) error {
	if err := o.requireAssignedRider(actorID, "confirm delivery"); err != nil {
		return err
	}

	newStatus, err := o.status.ConfirmDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ConfirmReceipt records that the store confirmed receipt, moving the order
// into its terminal Completed state. The caller must run settlement as part
// of the same atomic unit.
//
// Guards:
//   - the actor must be the store (Forbidden)
//   - a repeated completion on an already-Completed order fails with
//     AlreadySettled so callers can distinguish it from other guard
//     failures and perform zero wallet mutations
//   - otherwise the order must be in Delivered (InvalidTransition)
func (o *Order) ConfirmReceipt(actorID kernel.UUID) error {
	if !actorID.IsEqual(o.storeID) {
		return errs.NewForbiddenError(actorID.String(), "confirm receipt")
	}
	if o.status == Completed {
		return errs.NewAlreadySettledError(o.id.String())
	}

	newStatus, err := o.status.ConfirmReceipt()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// DeliveryFee resolves the fee owed to the rider: the selected bid's amount.
// When no bid was ever selected it falls back to the store's fee ceiling and
// reports ok=false; callers must treat that as a data-integrity warning.
func (o *Order) DeliveryFee() (fee kernel.Money, ok bool) {
	if o.selectedBidID != nil {
		if bid, err := o.BidByID(*o.selectedBidID); err == nil {
			return bid.Amount(), true
		}
	}
	return o.feeCeiling, false
}

// MarkReviewed flips the reviewed flag for the actor's side of a completed
// order. Review content itself lives with the external review subsystem.
//
// Guards:
//   - the order must be Completed (InvalidState)
//   - the actor must be the store or the assigned rider (Forbidden)
func (o *Order) MarkReviewed(actorID kernel.UUID) error {
	if o.status != Completed {
		return errs.NewInvalidStateError(o.status.String(), "submit review")
	}

	switch {
	case actorID.IsEqual(o.storeID):
		o.storeReviewed = true
	case o.riderID != nil && actorID.IsEqual(*o.riderID):
		o.riderReviewed = true
	default:
		return errs.NewForbiddenError(actorID.String(), "review this order")
	}

	return nil
}

func (o *Order) requireAssignedRider(actorID kernel.UUID, action string) error {
	if o.riderID == nil || !actorID.IsEqual(*o.riderID) {
		return errs.NewForbiddenError(actorID.String(), action)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	o.productName = productName
	return nil
}

func (o *Order) setProductPrice(productPrice kernel.Money) error {
	if !productPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"productPrice",
			fmt.Errorf("%s is not greater than 0", productPrice.String()),
		)
	}
	o.productPrice = productPrice
	return nil
}

func (o *Order) setFeeCeiling(feeCeiling kernel.Money) error {
	if !feeCeiling.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"feeCeiling",
			fmt.Errorf("%s is not greater than 0", feeCeiling.String()),
		)
	}
	o.feeCeiling = feeCeiling
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = deliveryAddress
	return nil
}

func (o *Order) setClient(clientName, clientPhone string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	if clientPhone == "" {
		return errs.NewValueIsRequiredError("clientPhone")
	}
	o.clientName = clientName
	o.clientPhone = clientPhone
	return nil
}
