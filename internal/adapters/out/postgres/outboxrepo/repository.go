// Package outboxrepo persists staged integration events. Events are written
// in the same transaction as the order mutation they describe and drained by
// the outbox publisher job.
package outboxrepo

import (
	"context"
	"time"

	"quickship/internal/core/ports"

	"gorm.io/gorm"
)

// OutboxEventDTO represents the database structure for staged events.
type OutboxEventDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"type:varchar(64);index;not null"`
	EventType string `gorm:"type:varchar(64);not null"`
	Payload   []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
	SentAt    *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox events.
func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stages an event.
func (r *GormOutboxRepository) Add(ctx context.Context, event ports.OutboxEvent) error {
	dto := OutboxEventDTO{
		OrderID:   event.OrderID,
		EventType: event.EventType,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnsent retrieves up to limit unpublished events, oldest first.
func (r *GormOutboxRepository) GetUnsent(ctx context.Context, limit int) ([]ports.OutboxEvent, error) {
	var dtos []OutboxEventDTO
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]ports.OutboxEvent, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, ports.OutboxEvent{
			ID:        dto.ID,
			OrderID:   dto.OrderID,
			EventType: dto.EventType,
			Payload:   dto.Payload,
			CreatedAt: dto.CreatedAt,
			SentAt:    dto.SentAt,
		})
	}

	return events, nil
}

// MarkSent records that the events were handed to the broker.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&OutboxEventDTO{}).
		Where("id IN ?", ids).
		Update("sent_at", now).Error
}
