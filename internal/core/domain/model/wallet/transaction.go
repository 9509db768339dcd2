package wallet

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Direction indicates whether a transaction added funds to or removed funds
// from the wallet balance.
type Direction int

const (
	// UnknownDirection represents an invalid or undefined direction.
	// This value (0) helps catch uninitialized Direction values.
	UnknownDirection Direction = iota

	// In is a credit: funds entered the balance.
	In

	// Out is a debit: funds left the balance.
	Out
)

// getDirectionStrings returns a map of Direction values to their string
// representations.
func getDirectionStrings() map[Direction]string {
	return map[Direction]string{
		UnknownDirection: "Unknown",
		In:               "IN",
		Out:              "OUT",
	}
}

// Validate checks if the Direction value is valid.
// Valid directions are In and Out; UnknownDirection is invalid.
func (d Direction) Validate() error {
	if d != In && d != Out {
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not a valid direction", d))
	}
	return nil
}

// String returns the wire name of the direction ("IN"/"OUT").
// Implements fmt.Stringer; safe to call on invalid values.
func (d Direction) String() string {
	if str, ok := getDirectionStrings()[d]; ok {
		return str
	}
	return "Unknown"
}

// DirectionFromString parses a wire direction name ("IN"/"OUT").
func DirectionFromString(value string) (Direction, error) {
	for direction, name := range getDirectionStrings() {
		if name == value && direction != UnknownDirection {
			return direction, nil
		}
	}
	return UnknownDirection, errs.NewValueIsInvalidErrorWithCause(
		"direction",
		fmt.Errorf("%q is not a valid direction", value),
	)
}

// Transaction is an immutable ledger record: a single movement of funds into
// or out of a wallet balance, with a human-readable description and the time
// it happened. Records are never mutated or deleted once appended.
type Transaction struct {
	id          kernel.UUID
	amount      kernel.Money
	direction   Direction
	description string
	timestamp   time.Time
}

// NewTransaction creates a ledger record. The amount must be strictly
// positive and the direction valid; the description is required.
func NewTransaction(
	id kernel.UUID,
	amount kernel.Money,
	direction Direction,
	description string,
	timestamp time.Time,
) (Transaction, error) {
	if err := id.Validate(); err != nil {
		return Transaction{}, err
	}
	if !amount.IsPositive() {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause(
			"transaction amount",
			fmt.Errorf("%s is not greater than 0", amount.String()),
		)
	}
	if err := direction.Validate(); err != nil {
		return Transaction{}, err
	}
	if description == "" {
		return Transaction{}, errs.NewValueIsRequiredError("transaction description")
	}

	return Transaction{
		id:          id,
		amount:      amount,
		direction:   direction,
		description: description,
		timestamp:   timestamp,
	}, nil
}

// ID returns the transaction's unique identifier.
func (t Transaction) ID() kernel.UUID {
	return t.id
}

// Amount returns the moved amount. Always positive; the sign of the movement
// is carried by Direction.
func (t Transaction) Amount() kernel.Money {
	return t.amount
}

// Direction returns whether funds moved into or out of the balance.
func (t Transaction) Direction() Direction {
	return t.direction
}

// Description returns the human-readable reason for the movement.
func (t Transaction) Description() string {
	return t.description
}

// Timestamp returns when the movement happened.
func (t Transaction) Timestamp() time.Time {
	return t.timestamp
}
