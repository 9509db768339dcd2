package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullLifecycle_CompetingBidsToSettledWallets walks an order from creation
// to completion with two competing riders and checks the money end to end:
// the store pays only the winning fee, the rider fronts the product price as
// collateral and gets it back with the fee on settlement.
func TestFullLifecycle_CompetingBidsToSettledWallets(t *testing.T) {
	now := time.Now()
	storeID := kernel.NewUUID()
	riderAID := kernel.NewUUID()
	riderBID := kernel.NewUUID()

	storeWallet, err := wallet.NewWallet(kernel.NewUUID(), storeID, money(t, "1000"), now)
	require.NoError(t, err)
	riderBWallet, err := wallet.NewWallet(kernel.NewUUID(), riderBID, money(t, "500"), now)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), storeID,
		"Birthday cake", money(t, "50"), money(t, "10"),
		"12 Main St", "Alice", "+15550100",
		now,
	)
	require.NoError(t, err)
	require.Equal(t, order.Bidding, o.Status())

	// Two riders compete, rider B undercuts.
	_, err = o.PlaceBid(riderAID, money(t, "8"), now)
	require.NoError(t, err)
	bidB, err := o.PlaceBid(riderBID, money(t, "6"), now)
	require.NoError(t, err)
	require.Len(t, o.Bids(), 2)

	require.NoError(t, o.SelectBid(storeID, bidB.ID()))
	require.Equal(t, order.AwaitingEscrow, o.Status())
	require.NotNil(t, o.RiderID())
	assert.True(t, riderBID.IsEqual(*o.RiderID()))

	// Store deposits the winning fee. Status holds until both sides pay.
	fee, fromBid := o.DeliveryFee()
	require.True(t, fromBid)
	require.True(t, fee.IsEqual(money(t, "6")))
	require.NoError(t, o.FundStoreEscrow())
	require.NoError(t, storeWallet.MoveToEscrow(fee, "Escrow deposit for Birthday cake", now))
	assert.Equal(t, order.AwaitingEscrow, o.Status())
	assert.True(t, storeWallet.Balance().IsEqual(money(t, "994")))
	assert.True(t, storeWallet.EscrowHeld().IsEqual(money(t, "6")))

	// Rider deposits the product price as collateral and the gate opens.
	require.NoError(t, o.FundRiderEscrow())
	require.NoError(t, riderBWallet.MoveToEscrow(o.ProductPrice(), "Product collateral for Birthday cake", now))
	assert.Equal(t, order.ReadyForPickup, o.Status())
	assert.True(t, riderBWallet.Balance().IsEqual(money(t, "450")))
	assert.True(t, riderBWallet.EscrowHeld().IsEqual(money(t, "50")))

	// Delivery leg.
	require.NoError(t, o.ConfirmPickup(riderBID))
	require.Equal(t, order.InTransit, o.Status())
	require.NoError(t, o.ConfirmDelivery(riderBID))
	require.Equal(t, order.Delivered, o.Status())
	require.NoError(t, o.ConfirmReceipt(storeID))
	require.Equal(t, order.Completed, o.Status())

	engine := services.NewSettlementEngine()
	settlement, err := engine.Compute(o)
	require.NoError(t, err)
	require.NoError(t, engine.Apply(settlement, storeWallet, riderBWallet, now))

	// Store: 1000 - 6 (fee escrow) + 50 (product payment).
	assert.True(t, storeWallet.Balance().IsEqual(money(t, "1044")))
	assert.True(t, storeWallet.EscrowHeld().IsZero())

	// Rider B: 500 - 50 (collateral) + 56 (payout + collateral back).
	assert.True(t, riderBWallet.Balance().IsEqual(money(t, "506")))
	assert.True(t, riderBWallet.EscrowHeld().IsZero())
}
