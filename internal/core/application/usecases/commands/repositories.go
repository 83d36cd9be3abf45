// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"quickship/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW manages transactions across the order aggregate, its audit trail
	// and the integration event outbox. Quick-ship writes all three together
	// so downstream consumers never observe a booked order without its events.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   auditRepo := uow.AuditRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
		OutboxRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	// Each quick-ship run opens separate units of work for the booking
	// and label phases.
	UoWFactory interface {
		Create() UoW
	}
)
