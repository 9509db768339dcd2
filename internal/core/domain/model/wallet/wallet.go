package wallet

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrWalletIsNotConstructed is returned when a Wallet instance was not
	// created through NewWallet or RestoreWallet.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet or RestoreWallet")

	// ErrEscrowExceeded is the underlying cause reported when a release asks
	// for more than the wallet currently holds in escrow.
	ErrEscrowExceeded = errors.New("release exceeds escrow held")
)

// OpeningBalanceDescription is the ledger description of the transaction
// seeded at wallet creation.
const OpeningBalanceDescription = "Opening balance"

// Wallet is the ledger aggregate for one user's funds.
//
// It tracks the spendable balance, the amount locked in escrow, and the
// newest-first log of Transaction records. All mutations go through the
// methods below, each of which either fully applies or leaves the wallet
// unchanged.
type Wallet struct {
	// id is the unique identifier of the wallet
	id kernel.UUID

	// ownerID references the user this wallet belongs to (1:1)
	ownerID kernel.UUID

	// balance is the spendable amount, never negative
	balance kernel.Money

	// escrowHeld is the amount locked pending settlement
	escrowHeld kernel.Money

	// transactions is the append-only ledger, newest first
	transactions []Transaction

	// isConstructed ensures the wallet was created via a constructor
	isConstructed bool
}

// NewWallet creates a wallet for a user, seeded with an opening balance.
// A positive opening balance is recorded as the first IN transaction so the
// ledger accounts for every unit of the balance from day one.
func NewWallet(id, ownerID kernel.UUID, openingBalance kernel.Money, now time.Time) (*Wallet, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	w := &Wallet{
		id:            id,
		ownerID:       ownerID,
		balance:       kernel.ZeroMoney(),
		escrowHeld:    kernel.ZeroMoney(),
		transactions:  make([]Transaction, 0),
		isConstructed: true,
	}

	if openingBalance.IsPositive() {
		if err := w.Credit(openingBalance, OpeningBalanceDescription, now); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// RestoreWallet reconstructs a wallet from persistence without re-running the
// opening balance seeding. The transaction slice must be ordered newest-first,
// as stored.
func RestoreWallet(
	id, ownerID kernel.UUID,
	balance, escrowHeld kernel.Money,
	transactions []Transaction,
) (*Wallet, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	if transactions == nil {
		transactions = make([]Transaction, 0)
	}

	return &Wallet{
		id:            id,
		ownerID:       ownerID,
		balance:       balance,
		escrowHeld:    escrowHeld,
		transactions:  transactions,
		isConstructed: true,
	}, nil
}

// Validate ensures the Wallet instance was properly constructed.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

// ID returns the wallet's unique identifier.
func (w *Wallet) ID() kernel.UUID {
	return w.id
}

// OwnerID returns the identifier of the user owning this wallet.
func (w *Wallet) OwnerID() kernel.UUID {
	return w.ownerID
}

// Balance returns the spendable amount.
func (w *Wallet) Balance() kernel.Money {
	return w.balance
}

// EscrowHeld returns the amount currently locked in escrow.
func (w *Wallet) EscrowHeld() kernel.Money {
	return w.escrowHeld
}

// Transactions returns a copy of the ledger, newest first.
func (w *Wallet) Transactions() []Transaction {
	out := make([]Transaction, len(w.transactions))
	copy(out, w.transactions)
	return out
}

// Credit adds funds to the balance and appends one IN transaction.
func (w *Wallet) Credit(amount kernel.Money, description string, now time.Time) error {
	record, err := NewTransaction(kernel.NewUUID(), amount, In, description, now)
	if err != nil {
		return err
	}

	w.balance = w.balance.Add(amount)
	w.prepend(record)
	return nil
}

// Debit removes funds from the balance and appends one OUT transaction.
// Fails with InsufficientFunds if the balance is smaller than the amount;
// the wallet is left unchanged in that case.
func (w *Wallet) Debit(amount kernel.Money, description string, now time.Time) error {
	record, err := NewTransaction(kernel.NewUUID(), amount, Out, description, now)
	if err != nil {
		return err
	}

	if !w.balance.GreaterOrEqual(amount) {
		return errs.NewInsufficientFundsError(w.id.String(), w.balance.String(), amount.String())
	}

	newBalance, err := w.balance.Sub(amount)
	if err != nil {
		return err
	}

	w.balance = newBalance
	w.prepend(record)
	return nil
}

// MoveToEscrow atomically debits the balance and locks the same amount in
// escrow. Appends exactly one OUT transaction for the debit; the escrow
// increase itself does not touch the balance again.
func (w *Wallet) MoveToEscrow(amount kernel.Money, description string, now time.Time) error {
	if err := w.Debit(amount, description, now); err != nil {
		return err
	}

	w.escrowHeld = w.escrowHeld.Add(amount)
	return nil
}

// ReleaseFromEscrow unlocks funds held in escrow without touching the
// balance. Where the released funds go is decided by the settlement: a
// separate Credit pays them to whichever party they belong to. No transaction
// is appended because the balance does not change.
func (w *Wallet) ReleaseFromEscrow(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"release amount",
			fmt.Errorf("%s is not greater than 0", amount.String()),
		)
	}

	if !w.escrowHeld.GreaterOrEqual(amount) {
		return errs.NewValueIsInvalidErrorWithCause("release amount", ErrEscrowExceeded)
	}

	newHeld, err := w.escrowHeld.Sub(amount)
	if err != nil {
		return err
	}

	w.escrowHeld = newHeld
	return nil
}

// prepend inserts a record at the head of the ledger (newest first).
func (w *Wallet) prepend(record Transaction) {
	w.transactions = append([]Transaction{record}, w.transactions...)
}
