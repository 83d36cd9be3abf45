package queries

import (
	"errors"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/guard"
)

var ErrGetPendingLabelOrdersQueryIsNotConstructed = errors.New(
	"GetPendingLabelOrdersQuery must be created via NewGetPendingLabelOrdersQuery constructor",
)

// GetPendingLabelOrdersQuery retrieves all orders that were booked but do
// not have a shipping label yet, including orders whose label phase failed
// and awaits an explicit retry.
//
// Example:
//
//	query := NewGetPendingLabelOrdersQuery()
//	handler := NewGetPendingLabelOrdersQueryHandler(db, cache)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending label orders: %w", err)
//	}
//	fmt.Printf("%d orders awaiting a label\n", len(orders))
type GetPendingLabelOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingLabelOrdersQuery creates a query to retrieve orders awaiting
// a label. This is a parameterless query.
func NewGetPendingLabelOrdersQuery() GetPendingLabelOrdersQuery {
	return GetPendingLabelOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingLabelOrdersQueryIsNotConstructed if validation fails.
func (q GetPendingLabelOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingLabelOrdersQueryIsNotConstructed)
}

// GetPendingLabelOrdersQueryResponse is one row of the pending-label view.
type GetPendingLabelOrdersQueryResponse struct {
	ID             kernel.UUID
	ExternalRef    string
	RecipientName  string
	BookingRef     string
	ShipmentStatus string
	CarrierName    string
	FreightPrice   float64
}
