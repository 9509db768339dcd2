package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with strictly forward transitions, no
// skipping and no reverse moves:
//
//	Bidding ──> AwaitingEscrow ──> ReadyForPickup ──> InTransit ──> Delivered ──> Completed
//
// The only branch point is the dual-escrow gate: the order stays in
// AwaitingEscrow until both the store and the rider have funded escrow,
// regardless of which side funds first. Completed is terminal.
//
// Status is a value object that validates state transitions and provides
// the wire names used in persistence, events and the API.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Bidding is the initial status: riders may place and amend bids.
	Bidding

	// AwaitingEscrow means a bid was selected; both parties must fund
	// escrow before the order can proceed.
	AwaitingEscrow

	// ReadyForPickup means both escrow deposits are locked and the rider
	// may collect the product.
	ReadyForPickup

	// InTransit means the rider confirmed pickup and is delivering.
	InTransit

	// Delivered means the rider confirmed handover to the client.
	Delivered

	// Completed means the store confirmed receipt and settlement ran.
	// This is a terminal state with no further transitions.
	Completed
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Bidding:        "BIDDING",
		AwaitingEscrow: "AWAITING_ESCROW",
		ReadyForPickup: "READY_FOR_PICKUP",
		InTransit:      "IN_TRANSIT",
		Delivered:      "DELIVERED",
		Completed:      "COMPLETED",
	}
}

// StatusFromString parses a wire name back into a Status.
// Returns an error for unknown names, including "UNKNOWN" itself.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Bidding through Completed; Unknown and any other
// values are invalid.
func (s Status) Validate() error {
	if s < Bidding || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status (e.g. "AWAITING_ESCROW").
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// ValidateBidding checks that bids may still be placed or amended.
// Bids are frozen the moment the order leaves Bidding.
func (s Status) ValidateBidding() error {
	if s != Bidding {
		return errs.NewInvalidStateError(s.String(), "place bid")
	}
	return nil
}

// SelectBid transitions the status to AwaitingEscrow.
//
// Valid transitions:
//   - Bidding -> AwaitingEscrow
//
// Any other source status is rejected, which also covers re-selection on an
// already-selected order.
func (s Status) SelectBid() (Status, error) {
	if s != Bidding {
		return Unknown, errs.NewInvalidTransitionError(s.String(), "select bid")
	}
	return AwaitingEscrow, nil
}

// ValidateDeposit checks that an escrow deposit is currently accepted.
// Deposits are only valid while the order is in AwaitingEscrow; the move to
// ReadyForPickup is decided by the order once both sides are funded.
func (s Status) ValidateDeposit() error {
	if s != AwaitingEscrow {
		return errs.NewInvalidTransitionError(s.String(), "deposit escrow")
	}
	return nil
}

// ConfirmPickup transitions the status to InTransit.
//
// Valid transitions:
//   - ReadyForPickup -> InTransit
func (s Status) ConfirmPickup() (Status, error) {
	if s != ReadyForPickup {
		return Unknown, errs.NewInvalidTransitionError(s.String(), "confirm pickup")
	}
	return InTransit, nil
}

// ConfirmDelivery transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
func (s Status) ConfirmDelivery() (Status, error) {
	if s != InTransit {
		return Unknown, errs.NewInvalidTransitionError(s.String(), "confirm delivery")
	}
	return Delivered, nil
}

// ConfirmReceipt transitions the status to Completed.
//
// Valid transitions:
//   - Delivered -> Completed
//
// Completed is terminal; the caller runs settlement exactly once as part of
// this transition.
func (s Status) ConfirmReceipt() (Status, error) {
	if s != Delivered {
		return Unknown, errs.NewInvalidTransitionError(s.String(), "confirm receipt")
	}
	return Completed, nil
}
