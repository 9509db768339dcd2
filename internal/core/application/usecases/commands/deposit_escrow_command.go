package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDepositEscrowCommandIsNotConstructed = errors.New(
	"DepositEscrowCommand must be created via NewDepositEscrowCommand constructor",
)

// Party names the side of the order making an escrow deposit.
type Party string

const (
	// PartyStore deposits the delivery fee.
	PartyStore Party = "STORE"

	// PartyRider deposits the product price as collateral.
	PartyRider Party = "RIDER"
)

// PartyFromString parses a wire party name, case-insensitively.
func PartyFromString(value string) (Party, error) {
	switch Party(strings.ToUpper(value)) {
	case PartyStore:
		return PartyStore, nil
	case PartyRider:
		return PartyRider, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"party",
			fmt.Errorf("%q is not a known party", value),
		)
	}
}

// DepositEscrowCommand represents one side's escrow deposit on an order in
// the escrow phase. The store deposits the delivery fee; the rider deposits
// the product price as collateral. The two deposits may arrive in any order.
type DepositEscrowCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	party   Party

	guard guard.ConstructorGuard
}

// NewDepositEscrowCommand creates a command for an escrow deposit by the
// given party. The deposit amount is not part of the command; it is dictated
// by the order (fee for the store, product price for the rider).
func NewDepositEscrowCommand(orderID, actorID kernel.UUID, party Party) (DepositEscrowCommand, error) {
	cmd := DepositEscrowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setParty(party),
	); err != nil {
		return DepositEscrowCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DepositEscrowCommand) Validate() error {
	return c.guard.Validate(ErrDepositEscrowCommandIsNotConstructed)
}

// OrderID returns the order being funded.
func (c DepositEscrowCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user making the deposit.
func (c DepositEscrowCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Party returns the depositing side.
func (c DepositEscrowCommand) Party() Party {
	return c.party
}

func (c *DepositEscrowCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DepositEscrowCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *DepositEscrowCommand) setParty(party Party) error {
	if party != PartyStore && party != PartyRider {
		return errs.NewValueIsInvalidError("party")
	}

	c.party = party
	return nil
}
