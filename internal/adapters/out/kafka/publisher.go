// Package kafka delivers staged outbox events to the message broker.
package kafka

import (
	"context"
	"errors"
	"time"

	"quickship/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// EventPublisher implements ports.EventPublisher on top of a kafka-go writer.
// Messages are keyed by order id so every event of one order lands on the
// same partition in emit order.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher creates a publisher writing to the given brokers and topic.
func NewEventPublisher(brokers []string, topic string) (*EventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers list is empty")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 100 * time.Millisecond,
	}

	return &EventPublisher{writer: writer}, nil
}

// Publish sends one event to the broker.
func (p *EventPublisher) Publish(ctx context.Context, event ports.OutboxEvent) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: event.Payload,
		Time:  event.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}

// Close flushes pending messages and releases the writer.
func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
