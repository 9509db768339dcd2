package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"
)

// MutationKind distinguishes the two wallet operations a settlement performs.
type MutationKind int

const (
	// UnknownMutation represents an invalid or undefined kind.
	UnknownMutation MutationKind = iota

	// ReleaseEscrow unlocks funds a party holds in escrow.
	ReleaseEscrow

	// Credit pays funds into a party's balance.
	Credit
)

// String returns the name of the mutation kind. Implements fmt.Stringer.
func (k MutationKind) String() string {
	switch k {
	case ReleaseEscrow:
		return "ReleaseEscrow"
	case Credit:
		return "Credit"
	default:
		return "Unknown"
	}
}

// WalletMutation is one step of a settlement: an operation of Kind applied
// to the wallet owned by UserID. Description is only set for credits, which
// append a ledger transaction.
type WalletMutation struct {
	UserID      kernel.UUID
	Kind        MutationKind
	Amount      kernel.Money
	Description string
}

// Settlement is the computed payout plan for a completed order.
// UsedFallbackFee flags the data-integrity edge case where no bid was ever
// selected and the order's fee ceiling stood in for the fee; callers must
// log it as a warning rather than swallow it.
type Settlement struct {
	OrderID         kernel.UUID
	Fee             kernel.Money
	UsedFallbackFee bool
	Mutations       []WalletMutation
}

// SettlementEngine computes and applies order settlements.
// The engine is stateless; exactly-once execution is guaranteed by the order
// status machine (a repeated completion fails with AlreadySettled before the
// engine is ever invoked again) together with the surrounding transaction.
type SettlementEngine struct{}

// NewSettlementEngine creates a settlement engine.
func NewSettlementEngine() SettlementEngine {
	return SettlementEngine{}
}

// Compute derives the payout plan for an order, as one logically atomic unit:
//
//  1. Store wallet: release the delivery fee from escrow, then credit the
//     product price (the rider's collateral pays for the goods).
//  2. Rider wallet: release the collateral (product price) from escrow, then
//     credit fee + product price (payout plus collateral coming back).
//
// Escrow movements across the two parties net to zero against the deposits
// made while the order was in AwaitingEscrow.
//
// Compute is pure: it never touches wallets or persistence.
func (SettlementEngine) Compute(o *order.Order) (Settlement, error) {
	if err := o.Validate(); err != nil {
		return Settlement{}, err
	}
	if o.RiderID() == nil {
		return Settlement{}, errs.NewValueIsRequiredError("riderID")
	}

	fee, feeFromBid := o.DeliveryFee()
	storeID := o.StoreID()
	riderID := *o.RiderID()
	price := o.ProductPrice()

	return Settlement{
		OrderID:         o.ID(),
		Fee:             fee,
		UsedFallbackFee: !feeFromBid,
		Mutations: []WalletMutation{
			{UserID: storeID, Kind: ReleaseEscrow, Amount: fee},
			{
				UserID:      storeID,
				Kind:        Credit,
				Amount:      price,
				Description: fmt.Sprintf("Product payment from rider for %s", o.ProductName()),
			},
			{UserID: riderID, Kind: ReleaseEscrow, Amount: price},
			{
				UserID:      riderID,
				Kind:        Credit,
				Amount:      fee.Add(price),
				Description: fmt.Sprintf("Payout & collateral release for %s", o.ProductName()),
			},
		},
	}, nil
}

// Apply executes the payout plan against the two wallet aggregates.
// Mutations are applied in plan order; the first failure aborts, and the
// caller's transaction rollback discards any partial wallet state so the
// operation stays all-or-nothing.
func (SettlementEngine) Apply(
	settlement Settlement,
	storeWallet, riderWallet *wallet.Wallet,
	now time.Time,
) error {
	for _, m := range settlement.Mutations {
		var target *wallet.Wallet
		switch {
		case m.UserID.IsEqual(storeWallet.OwnerID()):
			target = storeWallet
		case m.UserID.IsEqual(riderWallet.OwnerID()):
			target = riderWallet
		default:
			return errs.NewObjectNotFoundError("walletOwnerId", m.UserID.String())
		}

		switch m.Kind {
		case ReleaseEscrow:
			if err := target.ReleaseFromEscrow(m.Amount); err != nil {
				return err
			}
		case Credit:
			if err := target.Credit(m.Amount, m.Description, now); err != nil {
				return err
			}
		default:
			return errs.NewValueIsInvalidErrorWithCause(
				"mutation kind",
				fmt.Errorf("%d is not a valid mutation kind", m.Kind),
			)
		}
	}

	return nil
}
