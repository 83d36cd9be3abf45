package queries

import (
	"errors"
	"time"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/guard"
)

var ErrGetOrderAuditQueryIsNotConstructed = errors.New(
	"GetOrderAuditQuery must be created via NewGetOrderAuditQuery constructor",
)

// GetOrderAuditQuery retrieves the audit trail of one order: every booking
// and label transition recorded by the workflow, oldest first.
type GetOrderAuditQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderAuditQuery creates a query for an order's audit trail.
// Validates that the order ID is a valid UUID.
func NewGetOrderAuditQuery(orderID kernel.UUID) (GetOrderAuditQuery, error) {
	query := GetOrderAuditQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderAuditQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderAuditQueryIsNotConstructed if validation fails.
func (q GetOrderAuditQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAuditQueryIsNotConstructed)
}

// OrderID returns the order whose audit trail is requested.
func (q GetOrderAuditQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderAuditQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderAuditQueryResponse is one audit trail entry.
type GetOrderAuditQueryResponse struct {
	ID         kernel.UUID
	OccurredAt time.Time
	Text       string
}
