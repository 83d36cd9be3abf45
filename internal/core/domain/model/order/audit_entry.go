package order

import (
	"time"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/errs"
)

// AuditEntry records a workflow transition on an order in human-readable form.
// Entries are append-only: the quick-ship workflow creates one at each
// successful or meaningfully failed step and nothing ever updates or
// deletes them.
type AuditEntry struct {
	id       kernel.UUID
	orderID  kernel.UUID
	occurred time.Time
	text     string
}

// NewAuditEntry creates an audit entry for an order transition.
func NewAuditEntry(orderID kernel.UUID, occurred time.Time, text string) (AuditEntry, error) {
	if err := orderID.Validate(); err != nil {
		return AuditEntry{}, err
	}
	if text == "" {
		return AuditEntry{}, errs.NewValueIsRequiredError("audit text")
	}

	return AuditEntry{
		id:       kernel.NewUUID(),
		orderID:  orderID,
		occurred: occurred,
		text:     text,
	}, nil
}

// RestoreAuditEntry reconstructs an audit entry from persistence.
func RestoreAuditEntry(id, orderID kernel.UUID, occurred time.Time, text string) (AuditEntry, error) {
	if err := id.Validate(); err != nil {
		return AuditEntry{}, err
	}
	if err := orderID.Validate(); err != nil {
		return AuditEntry{}, err
	}

	return AuditEntry{
		id:       id,
		orderID:  orderID,
		occurred: occurred,
		text:     text,
	}, nil
}

// ID returns the entry's unique identifier.
func (a AuditEntry) ID() kernel.UUID { return a.id }

// OrderID returns the order the entry belongs to.
func (a AuditEntry) OrderID() kernel.UUID { return a.orderID }

// OccurredAt returns when the transition happened.
func (a AuditEntry) OccurredAt() time.Time { return a.occurred }

// Text returns the free-text description of the transition.
func (a AuditEntry) Text() string { return a.text }
