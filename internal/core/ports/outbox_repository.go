package ports

import (
	"context"
	"time"
)

// OutboxEvent is an order-changed event staged for publication. Events are
// written in the same transaction as the order mutation they describe and
// published asynchronously by a scheduled job, so a broker outage never
// fails a workflow run.
type OutboxEvent struct {
	ID        int64
	OrderID   string
	EventType string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// OutboxRepository stages and drains order-changed events.
type OutboxRepository interface {
	// Add stages an event inside the current transaction.
	Add(ctx context.Context, event OutboxEvent) error

	// GetUnsent retrieves up to limit unpublished events, oldest first.
	GetUnsent(ctx context.Context, limit int) ([]OutboxEvent, error)

	// MarkSent records that the events were handed to the broker.
	MarkSent(ctx context.Context, ids []int64) error
}

// EventPublisher delivers staged events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}
