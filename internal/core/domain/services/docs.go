// Package services contains domain services that coordinate multiple
// aggregates without owning state themselves.
//
// SettlementEngine computes and applies the terminal payout of an order:
// which escrow holdings are released and which credits are paid to the store
// and the rider when the store confirms receipt. The computation is a pure
// function of the order so it can be unit-tested in isolation from
// persistence; applying it mutates the two wallet aggregates and is executed
// by the application layer inside the same transaction as the status write.
package services
