// Package rabbitmq provides the broker adapter for integration events.
// Status changes, bid placements and escrow deposits are published to a
// durable queue consumed by downstream systems (notifications, analytics).
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"

	"marketplace/internal/core/ports"
)

// Publisher implements ports.EventPublisher on top of a RabbitMQ channel.
// Messages are persistent so a broker restart does not lose events.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher connects to RabbitMQ and declares the durable event queue.
func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
		queue:   queue,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishOrderStatusChanged publishes the event to the queue as JSON.
func (p *Publisher) PublishOrderStatusChanged(
	ctx context.Context,
	event ports.OrderStatusChangedEvent,
) error {
	return p.publish(ctx, event)
}

// PublishBidPlaced publishes the event to the queue as JSON.
func (p *Publisher) PublishBidPlaced(ctx context.Context, event ports.BidPlacedEvent) error {
	return p.publish(ctx, event)
}

// PublishEscrowPaid publishes the event to the queue as JSON.
func (p *Publisher) PublishEscrowPaid(ctx context.Context, event ports.EscrowPaidEvent) error {
	return p.publish(ctx, event)
}

func (p *Publisher) publish(ctx context.Context, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.Publish(
		"",      // default exchange
		p.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
