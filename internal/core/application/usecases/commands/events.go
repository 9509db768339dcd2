package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// publishStatusChanged pushes an OrderStatusChangedEvent for the order's
// current status. Called only after the owning transaction has committed.
// Publishing is best effort: a broker failure is logged and swallowed so the
// already-committed business operation still succeeds.
func publishStatusChanged(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	event := ports.OrderStatusChangedEvent{
		OrderID:    aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		logger.Warn("failed to publish order status event",
			"orderId", event.OrderID,
			"status", event.Status,
			"error", err)
	}
}

// publishBidPlaced pushes a BidPlacedEvent after the bid transaction has
// committed. Best effort, like publishStatusChanged.
func publishBidPlaced(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
	bid *order.Bid,
	amended bool,
) {
	event := ports.BidPlacedEvent{
		OrderID:    aggregate.ID().String(),
		BidID:      bid.ID().String(),
		RiderID:    bid.RiderID().String(),
		Amount:     bid.Amount().String(),
		Amended:    amended,
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishBidPlaced(ctx, event); err != nil {
		logger.Warn("failed to publish bid placed event",
			"orderId", event.OrderID,
			"bidId", event.BidID,
			"error", err)
	}
}

// publishEscrowPaid pushes an EscrowPaidEvent after the deposit transaction
// has committed. Best effort, like publishStatusChanged.
func publishEscrowPaid(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
	party string,
	amount kernel.Money,
) {
	event := ports.EscrowPaidEvent{
		OrderID:    aggregate.ID().String(),
		Party:      party,
		Amount:     amount.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishEscrowPaid(ctx, event); err != nil {
		logger.Warn("failed to publish escrow paid event",
			"orderId", event.OrderID,
			"party", event.Party,
			"error", err)
	}
}
