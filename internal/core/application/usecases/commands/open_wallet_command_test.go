package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenWalletCommand_ValidInput(t *testing.T) {
	walletID := kernel.NewUUID()
	ownerID := kernel.NewUUID()

	cmd, err := commands.NewOpenWalletCommand(walletID, ownerID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.WalletID().IsEqual(walletID))
	assert.True(t, cmd.OwnerID().IsEqual(ownerID))
}

func TestNewOpenWalletCommand_InvalidIDs(t *testing.T) {
	var invalidID kernel.UUID

	_, err := commands.NewOpenWalletCommand(invalidID, kernel.NewUUID())
	require.Error(t, err)

	_, err = commands.NewOpenWalletCommand(kernel.NewUUID(), invalidID)
	require.Error(t, err)
}

func TestOpenWalletCommand_NotConstructed(t *testing.T) {
	cmd := commands.OpenWalletCommand{}

	require.ErrorIs(t, cmd.Validate(), commands.ErrOpenWalletCommandIsNotConstructed)
}
