package jobs

import (
	"context"
	"log/slog"

	"quickship/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// outboxBatchSize bounds how many staged events one drain pass hands to the
// broker.
const outboxBatchSize = 50

// OutboxPublisherJob drains staged integration events to the message broker.
// Runs every five seconds; events stay in the outbox until the broker
// acknowledged them, so a failed pass retries on the next tick.
type OutboxPublisherJob struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxPublisherJob creates the publisher job. The outbox repository must
// read committed events only, so it gets a plain connection rather than a
// unit of work.
func NewOutboxPublisherJob(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxPublisherJob {
	return &OutboxPublisherJob{
		outbox:    outbox,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_publisher_job"),
	}
}

// Start begins the outbox drain loop.
func (j *OutboxPublisherJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.drain(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox drain pass failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox publisher job started (running every five seconds)")
	return nil
}

// Stop stops the outbox drain loop.
func (j *OutboxPublisherJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox publisher job stopped")
}

// drain publishes one batch of unsent events in staging order. A publish
// failure ends the pass; events already acknowledged are still marked sent
// so they are not delivered twice.
func (j *OutboxPublisherJob) drain(ctx context.Context) error {
	events, err := j.outbox.GetUnsent(ctx, outboxBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	sent := make([]int64, 0, len(events))
	var publishErr error
	for _, event := range events {
		if publishErr = j.publisher.Publish(ctx, event); publishErr != nil {
			j.logger.ErrorContext(ctx, "Failed to publish outbox event",
				"event_id", event.ID, "event_type", event.EventType, "error", publishErr)
			break
		}
		sent = append(sent, event.ID)
	}

	if err = j.outbox.MarkSent(ctx, sent); err != nil {
		return err
	}

	return publishErr
}
