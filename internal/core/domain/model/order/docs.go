// Package order implements the order aggregate: the lifecycle state machine
// and the bid book of the delivery marketplace.
//
// An order moves strictly forward through
// Bidding -> AwaitingEscrow -> ReadyForPickup -> InTransit -> Delivered -> Completed.
// Riders bid while the order is in Bidding (one active bid per rider,
// amended in place); the store selects a bid, which assigns the rider and
// locks the fee; both parties then fund escrow in either order, and the
// order advances automatically once both sides are locked. The remaining
// transitions are driven manually by the authorized party, and completion
// is terminal.
//
// The aggregate owns only order state. Wallet balances are owned by the
// wallet package; the application layer composes the two inside a single
// unit of work so that escrow deposits and settlement are all-or-nothing.
package order
