package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkOrderReviewedCommandIsNotConstructed = errors.New(
	"MarkOrderReviewedCommand must be created via NewMarkOrderReviewedCommand constructor",
)

// MarkOrderReviewedCommand records that one party of a completed order has
// submitted their review. The review content itself is held by the review
// subsystem; the order only tracks whether each side has reviewed.
type MarkOrderReviewedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderReviewedCommand creates a command to flag the actor's side of
// the order as reviewed.
func NewMarkOrderReviewedCommand(orderID, actorID kernel.UUID) (MarkOrderReviewedCommand, error) {
	cmd := MarkOrderReviewedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
	); err != nil {
		return MarkOrderReviewedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderReviewedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReviewedCommandIsNotConstructed)
}

// OrderID returns the reviewed order.
func (c MarkOrderReviewedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the reviewing user.
func (c MarkOrderReviewedCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *MarkOrderReviewedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkOrderReviewedCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
