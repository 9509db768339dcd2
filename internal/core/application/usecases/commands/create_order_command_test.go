package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"Birthday cake", money(t, "100"), money(t, "15"),
		"12 Main St", "Alice", "+15550100",
	)
	require.NoError(t, err)
	return cmd
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd := validCreateOrderCommand(t)

	require.NoError(t, cmd.Validate())
	assert.Equal(t, "Birthday cake", cmd.ProductName())
	assert.Equal(t, "12 Main St", cmd.DeliveryAddress())
	assert.Equal(t, "Alice", cmd.ClientName())
	assert.Equal(t, "+15550100", cmd.ClientPhone())
	assert.True(t, cmd.ProductPrice().IsEqual(money(t, "100")))
	assert.True(t, cmd.FeeCeiling().IsEqual(money(t, "15")))
}

func TestNewCreateOrderCommand_MissingFields(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"", money(t, "100"), money(t, "15"),
		"", "", "",
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_NonPositiveAmounts(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"Birthday cake", money(t, "0"), money(t, "15"),
		"12 Main St", "Alice", "+15550100",
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		"Birthday cake", money(t, "100"), money(t, "0"),
		"12 Main St", "Alice", "+15550100",
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	var invalidID kernel.UUID

	_, err := commands.NewCreateOrderCommand(
		invalidID, kernel.NewUUID(),
		"Birthday cake", money(t, "100"), money(t, "15"),
		"12 Main St", "Alice", "+15550100",
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
