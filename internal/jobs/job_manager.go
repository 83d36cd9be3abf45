package jobs

import (
	"fmt"
	"log/slog"

	"quickship/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxPublisherJob *OutboxPublisherJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxPublisherJob: NewOutboxPublisherJob(outbox, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxPublisherJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox publisher job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxPublisherJob.Stop()
}
