package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand represents a lifecycle confirmation on an active
// order: the rider confirming pickup or delivery, or the store confirming
// receipt. The target status names the single step being taken; skipping and
// reversing are rejected by the aggregate.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates a command to advance an order one step.
// Only InTransit, Delivered and Completed are reachable through confirmations;
// Bidding, AwaitingEscrow and ReadyForPickup are reached by other operations.
func NewAdvanceOrderStatusCommand(
	orderID, actorID kernel.UUID,
	target order.Status,
) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being advanced.
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the confirming user.
func (c AdvanceOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the status the confirmation leads to.
func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *AdvanceOrderStatusCommand) setTarget(target order.Status) error {
	switch target {
	case order.InTransit, order.Delivered, order.Completed:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"target",
			fmt.Errorf("%s is not reachable through a confirmation", target),
		)
	}
}
