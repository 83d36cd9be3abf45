// Package jobs provides scheduled background tasks for the quick-ship service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment workflow.
//
// # Available Jobs
//
// 1. OutboxPublisherJob - Runs every five seconds to drain staged integration
// events from the transactional outbox to the message broker.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outboxRepo, publisher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed drain pass is logged and retried on the next tick; events stay
//   in the outbox until the broker acknowledged them.
// - Events acknowledged before a mid-batch failure are marked sent so they
//   are not delivered twice.
package jobs
