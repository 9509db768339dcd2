package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrOpenWalletCommandIsNotConstructed = errors.New(
	"OpenWalletCommand must be created via NewOpenWalletCommand constructor",
)

// OpenWalletCommand represents a request to open the wallet for a newly
// registered user. The opening balance is not part of the command; it is
// derived from the user's role so every store and every rider starts from the
// same footing.
type OpenWalletCommand struct { //nolint:recvcheck //using for validation
	walletID kernel.UUID
	ownerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewOpenWalletCommand creates a command to open a wallet for the given user.
func NewOpenWalletCommand(walletID, ownerID kernel.UUID) (OpenWalletCommand, error) {
	cmd := OpenWalletCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWalletID(walletID),
		cmd.setOwnerID(ownerID),
	); err != nil {
		return OpenWalletCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenWalletCommand) Validate() error {
	return c.guard.Validate(ErrOpenWalletCommandIsNotConstructed)
}

// WalletID returns the identifier for the new wallet.
func (c OpenWalletCommand) WalletID() kernel.UUID {
	return c.walletID
}

// OwnerID returns the user the wallet belongs to.
func (c OpenWalletCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c *OpenWalletCommand) setWalletID(walletID kernel.UUID) error {
	if err := walletID.Validate(); err != nil {
		return err
	}

	c.walletID = walletID
	return nil
}

func (c *OpenWalletCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}
