package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// The quick-ship workflow uses two transactions per run: one that commits
// the booking state and one for the label outcome, so a crash between them
// leaves the order resumable rather than re-bookable.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// AuditRepository returns an AuditRepository bound to the current transaction.
	AuditRepository() AuditRepository

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
