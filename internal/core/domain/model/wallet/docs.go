// Package wallet implements the wallet ledger aggregate.
//
// A Wallet owns a user's spendable balance, the funds locked in escrow, and
// an append-only transaction log ordered newest-first. Every operation that
// affects the balance appends exactly one Transaction; transactions are
// immutable once appended.
//
// Invariants enforced here:
//   - balance never goes negative: a debit that would overdraw fails with
//     InsufficientFunds and leaves the wallet untouched
//   - escrowHeld tracks funds moved out of balance but not yet released;
//     a release may never exceed the amount currently held
//   - MoveToEscrow is atomic: the debit and the escrow increase happen in
//     one call or not at all
//
// Concurrency control (serializing all mutations on one wallet) is the
// responsibility of the persistence layer, which loads wallet rows under
// row-level locks inside a transaction.
package wallet
