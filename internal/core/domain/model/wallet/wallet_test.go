package wallet_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newTestWallet(t *testing.T, openingBalance string) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet(kernel.NewUUID(), kernel.NewUUID(), money(t, openingBalance), time.Now())
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	t.Run("should seed opening balance with an IN transaction", func(t *testing.T) {
		w := newTestWallet(t, "1000")

		assert.True(t, w.Balance().IsEqual(money(t, "1000")))
		assert.True(t, w.EscrowHeld().IsZero())
		require.Len(t, w.Transactions(), 1)
		record := w.Transactions()[0]
		assert.Equal(t, wallet.In, record.Direction())
		assert.Equal(t, wallet.OpeningBalanceDescription, record.Description())
		assert.True(t, record.Amount().IsEqual(money(t, "1000")))
	})

	t.Run("should allow zero opening balance without a transaction", func(t *testing.T) {
		w := newTestWallet(t, "0")

		assert.True(t, w.Balance().IsZero())
		assert.Empty(t, w.Transactions())
	})

	t.Run("should fail with invalid IDs", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := wallet.NewWallet(invalidID, kernel.NewUUID(), money(t, "0"), time.Now())

		require.Error(t, err)
	})
}

func TestWallet_Validate(t *testing.T) {
	t.Run("constructed wallet passes", func(t *testing.T) {
		require.NoError(t, newTestWallet(t, "10").Validate())
	})

	t.Run("nil wallet fails", func(t *testing.T) {
		var w *wallet.Wallet

		assert.Equal(t, wallet.ErrWalletIsNotConstructed, w.Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var w wallet.Wallet

		assert.Equal(t, wallet.ErrWalletIsNotConstructed, w.Validate())
	})
}

func TestWallet_Credit(t *testing.T) {
	t.Run("should add funds and log newest first", func(t *testing.T) {
		w := newTestWallet(t, "500")

		require.NoError(t, w.Credit(money(t, "56"), "Payout & collateral release", time.Now()))

		assert.True(t, w.Balance().IsEqual(money(t, "556")))
		require.Len(t, w.Transactions(), 2)
		assert.Equal(t, "Payout & collateral release", w.Transactions()[0].Description())
		assert.Equal(t, wallet.OpeningBalanceDescription, w.Transactions()[1].Description())
	})

	t.Run("should reject non-positive amounts", func(t *testing.T) {
		w := newTestWallet(t, "500")

		err := w.Credit(money(t, "0"), "nothing", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, w.Balance().IsEqual(money(t, "500")))
	})

	t.Run("should require a description", func(t *testing.T) {
		w := newTestWallet(t, "500")

		err := w.Credit(money(t, "5"), "", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestWallet_Debit(t *testing.T) {
	t.Run("should remove funds and append OUT transaction", func(t *testing.T) {
		w := newTestWallet(t, "1000")

		require.NoError(t, w.Debit(money(t, "6"), "Escrow deposit for Sneakers", time.Now()))

		assert.True(t, w.Balance().IsEqual(money(t, "994")))
		record := w.Transactions()[0]
		assert.Equal(t, wallet.Out, record.Direction())
		assert.True(t, record.Amount().IsEqual(money(t, "6")))
	})

	t.Run("should allow debiting the full balance", func(t *testing.T) {
		w := newTestWallet(t, "50")

		require.NoError(t, w.Debit(money(t, "50"), "all in", time.Now()))

		assert.True(t, w.Balance().IsZero())
	})

	t.Run("should fail with InsufficientFunds and leave wallet unchanged", func(t *testing.T) {
		w := newTestWallet(t, "4")

		err := w.Debit(money(t, "6"), "Escrow deposit", time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.True(t, w.Balance().IsEqual(money(t, "4")))
		assert.Len(t, w.Transactions(), 1) // only the opening balance
	})
}

func TestWallet_MoveToEscrow(t *testing.T) {
	t.Run("should debit balance and lock escrow atomically", func(t *testing.T) {
		w := newTestWallet(t, "500")

		require.NoError(t, w.MoveToEscrow(money(t, "50"), "Product collateral for Sneakers", time.Now()))

		assert.True(t, w.Balance().IsEqual(money(t, "450")))
		assert.True(t, w.EscrowHeld().IsEqual(money(t, "50")))
		require.Len(t, w.Transactions(), 2)
		assert.Equal(t, wallet.Out, w.Transactions()[0].Direction())
	})

	t.Run("should not lock escrow when the debit fails", func(t *testing.T) {
		w := newTestWallet(t, "10")

		err := w.MoveToEscrow(money(t, "50"), "Product collateral", time.Now())

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.True(t, w.Balance().IsEqual(money(t, "10")))
		assert.True(t, w.EscrowHeld().IsZero())
	})
}

func TestWallet_ReleaseFromEscrow(t *testing.T) {
	t.Run("should unlock escrow without touching balance or ledger", func(t *testing.T) {
		w := newTestWallet(t, "500")
		require.NoError(t, w.MoveToEscrow(money(t, "50"), "collateral", time.Now()))

		require.NoError(t, w.ReleaseFromEscrow(money(t, "50")))

		assert.True(t, w.EscrowHeld().IsZero())
		assert.True(t, w.Balance().IsEqual(money(t, "450")))
		assert.Len(t, w.Transactions(), 2) // opening + collateral, no release record
	})

	t.Run("should fail when release exceeds escrow held", func(t *testing.T) {
		w := newTestWallet(t, "500")
		require.NoError(t, w.MoveToEscrow(money(t, "10"), "collateral", time.Now()))

		err := w.ReleaseFromEscrow(money(t, "50"))

		require.Error(t, err)
		assert.True(t, w.EscrowHeld().IsEqual(money(t, "10")))
	})

	t.Run("should reject non-positive amounts", func(t *testing.T) {
		w := newTestWallet(t, "500")

		require.Error(t, w.ReleaseFromEscrow(money(t, "0")))
	})
}

func TestRestoreWallet(t *testing.T) {
	t.Run("should restore state without reseeding", func(t *testing.T) {
		id := kernel.NewUUID()
		owner := kernel.NewUUID()
		record, err := wallet.NewTransaction(kernel.NewUUID(), money(t, "6"), wallet.Out, "Escrow deposit", time.Now())
		require.NoError(t, err)

		w, err := wallet.RestoreWallet(id, owner, money(t, "994"), money(t, "6"), []wallet.Transaction{record})

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.True(t, w.ID().IsEqual(id))
		assert.True(t, w.Balance().IsEqual(money(t, "994")))
		assert.True(t, w.EscrowHeld().IsEqual(money(t, "6")))
		assert.Len(t, w.Transactions(), 1)
	})

	t.Run("should tolerate nil transactions", func(t *testing.T) {
		w, err := wallet.RestoreWallet(kernel.NewUUID(), kernel.NewUUID(), money(t, "0"), money(t, "0"), nil)

		require.NoError(t, err)
		assert.Empty(t, w.Transactions())
	})
}

func TestDirection(t *testing.T) {
	t.Run("string representations", func(t *testing.T) {
		assert.Equal(t, "IN", wallet.In.String())
		assert.Equal(t, "OUT", wallet.Out.String())
		assert.Equal(t, "Unknown", wallet.UnknownDirection.String())
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, wallet.In.Validate())
		require.NoError(t, wallet.Out.Validate())
		require.Error(t, wallet.UnknownDirection.Validate())
		require.Error(t, wallet.Direction(42).Validate())
	})
}
