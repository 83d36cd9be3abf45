package queries

import (
	"context"

	"quickship/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderAuditQueryHandler reads an order's audit trail from the database.
type GetOrderAuditQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderAuditQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderAuditQueryHandler(db *gorm.DB) GetOrderAuditQueryHandler {
	return GetOrderAuditQueryHandler{db: db}
}

// Handle returns the order's audit entries, oldest first. An order with no
// entries yields an empty slice, not an error.
func (h GetOrderAuditQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAuditQuery,
) ([]GetOrderAuditQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderAuditQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			occurred_at,
			text
		FROM audit_entries
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrderAuditQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.OccurredAt, &resp.Text); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = entryID
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
