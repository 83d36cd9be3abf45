// Package auditrepo persists the append-only audit trail of workflow transitions.
package auditrepo

import (
	"context"
	"time"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEntryDTO represents the database structure for audit entries.
type AuditEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OccurredAt time.Time `gorm:"index;not null"`
	Text       string    `gorm:"type:text;not null"`
}

// TableName specifies the database table name for audit entries.
func (AuditEntryDTO) TableName() string {
	return "audit_entries"
}

// GormAuditRepository implements AuditRepository using GORM.
// Entries are insert-only; there is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Add appends an audit entry.
func (r *GormAuditRepository) Add(ctx context.Context, entry order.AuditEntry) error {
	dto := AuditEntryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		OccurredAt: entry.OccurredAt(),
		Text:       entry.Text(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves the audit trail for one order, oldest first.
func (r *GormAuditRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]order.AuditEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AuditEntryDTO
	if err := r.db.WithContext(ctx).
		Order("occurred_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	entries := make([]order.AuditEntry, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		oid, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, err
		}

		entry, err := order.RestoreAuditEntry(id, oid, dto.OccurredAt, dto.Text)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
