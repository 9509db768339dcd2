package ports

import (
	"context"
	"time"
)

// OrderStatusChangedEvent notifies downstream consumers that an order moved
// to a new status. Published after the owning transaction commits.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BidPlacedEvent notifies downstream consumers that a rider placed or
// amended a bid. Amended is true when the call rewrote the rider's existing
// bid instead of adding a new one.
type BidPlacedEvent struct {
	OrderID    string    `json:"order_id"`
	BidID      string    `json:"bid_id"`
	RiderID    string    `json:"rider_id"`
	Amount     string    `json:"amount"`
	Amended    bool      `json:"amended"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EscrowPaidEvent notifies downstream consumers that one side funded its
// escrow deposit. Emitted for every deposit, including the first one, which
// flips a funding flag without changing the order status.
type EscrowPaidEvent struct {
	OrderID    string    `json:"order_id"`
	Party      string    `json:"party"`
	Amount     string    `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher pushes integration events to the message broker.
// Publishing is best effort: a failed publish is logged by the caller and
// never rolls back the business transaction.
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
	PublishBidPlaced(ctx context.Context, event BidPlacedEvent) error
	PublishEscrowPaid(ctx context.Context, event EscrowPaidEvent) error
}
