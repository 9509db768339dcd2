package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrReconcileEscrowCommandIsNotConstructed = errors.New(
	"ReconcileEscrowCommand must be created via NewReconcileEscrowCommand constructor",
)

// ReconcileEscrowCommand triggers a sweep for orders stuck in AwaitingEscrow
// with both escrow flags already set. Such orders should have advanced the
// moment the second deposit landed; the sweep self-heals any that did not.
type ReconcileEscrowCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileEscrowCommand creates a new command to trigger the escrow sweep.
// This is a parameterless command, typically issued by the scheduled job.
func NewReconcileEscrowCommand() ReconcileEscrowCommand {
	return ReconcileEscrowCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileEscrowCommand) Validate() error {
	return c.guard.Validate(ErrReconcileEscrowCommandIsNotConstructed)
}
