package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSelectBidCommandIsNotConstructed = errors.New(
	"SelectBidCommand must be created via NewSelectBidCommand constructor",
)

// SelectBidCommand represents the store's choice of a winning bid.
// Selection freezes the bid book, assigns the rider and moves the order into
// the escrow phase.
type SelectBidCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	bidID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectBidCommand creates a command to select the winning bid.
func NewSelectBidCommand(orderID, actorID, bidID kernel.UUID) (SelectBidCommand, error) {
	cmd := SelectBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setBidID(bidID),
	); err != nil {
		return SelectBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectBidCommand) Validate() error {
	return c.guard.Validate(ErrSelectBidCommandIsNotConstructed)
}

// OrderID returns the order whose bid is being selected.
func (c SelectBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user requesting the selection.
func (c SelectBidCommand) ActorID() kernel.UUID {
	return c.actorID
}

// BidID returns the chosen bid.
func (c SelectBidCommand) BidID() kernel.UUID {
	return c.bidID
}

func (c *SelectBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SelectBidCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *SelectBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}
