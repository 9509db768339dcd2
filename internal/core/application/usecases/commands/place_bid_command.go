package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPlaceBidCommandIsNotConstructed = errors.New(
	"PlaceBidCommand must be created via NewPlaceBidCommand constructor",
)

// PlaceBidCommand represents a rider's offer to deliver an order for a fee.
// A rider re-bidding on the same order amends their existing bid in place.
type PlaceBidCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewPlaceBidCommand creates a command to place or amend a bid.
// The amount must be strictly positive.
func NewPlaceBidCommand(orderID, riderID kernel.UUID, amount kernel.Money) (PlaceBidCommand, error) {
	cmd := PlaceBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
		cmd.setAmount(amount),
	); err != nil {
		return PlaceBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceBidCommand) Validate() error {
	return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
}

// OrderID returns the order being bid on.
func (c PlaceBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the bidding rider.
func (c PlaceBidCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Amount returns the offered delivery fee.
func (c PlaceBidCommand) Amount() kernel.Money {
	return c.amount
}

func (c *PlaceBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceBidCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *PlaceBidCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}

	c.amount = amount
	return nil
}
