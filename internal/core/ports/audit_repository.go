package ports

import (
	"context"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
)

// AuditRepository persists the append-only audit trail of workflow transitions.
type AuditRepository interface {
	// Add appends an audit entry. Entries are never updated or deleted.
	Add(ctx context.Context, entry order.AuditEntry) error

	// GetByOrder retrieves the audit trail for one order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.AuditEntry, error)
}
