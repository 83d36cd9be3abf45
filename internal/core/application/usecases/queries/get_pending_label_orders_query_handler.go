package queries

import (
	"context"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
	"quickship/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingLabelOrdersQueryHandler serves the pending-label list view.
// The warmed in-memory cache answers first; the database is the fallback,
// so a cold start still produces a correct list.
//
// Example:
//
//	handler := NewGetPendingLabelOrdersQueryHandler(db, cache)
//	query := NewGetPendingLabelOrdersQuery()
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get pending label orders: %v", err)
//	    return err
//	}
type GetPendingLabelOrdersQueryHandler struct {
	db    *gorm.DB
	cache ports.OrderListCache
}

// NewGetPendingLabelOrdersQueryHandler creates a handler for the
// pending-label view. Requires a GORM database connection and the order
// list cache.
func NewGetPendingLabelOrdersQueryHandler(
	db *gorm.DB,
	cache ports.OrderListCache,
) GetPendingLabelOrdersQueryHandler {
	return GetPendingLabelOrdersQueryHandler{db: db, cache: cache}
}

// Handle returns orders whose label tag is still pending, sorted by intake
// time so the oldest waiting order lists first.
func (h GetPendingLabelOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingLabelOrdersQuery,
) ([]GetPendingLabelOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if aggregates, warmed := h.cache.PendingLabel(); warmed {
		return mapPendingLabelResponses(aggregates), nil
	}

	responses := make([]GetPendingLabelOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			external_ref,
			recipient_name,
			booking_ref,
			shipment_status,
			carrier_name,
			freight_price
		FROM orders
		WHERE label_status = ?
		ORDER BY created_at, id
	`, order.LabelPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingLabelOrdersQueryResponse
		var id uuid.UUID
		var shipmentStatus int

		err = rows.Scan(
			&id,
			&resp.ExternalRef,
			&resp.RecipientName,
			&resp.BookingRef,
			&shipmentStatus,
			&resp.CarrierName,
			&resp.FreightPrice,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.ShipmentStatus = order.ShipmentStatus(shipmentStatus).String()
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func mapPendingLabelResponses(aggregates []*order.Order) []GetPendingLabelOrdersQueryResponse {
	responses := make([]GetPendingLabelOrdersQueryResponse, 0, len(aggregates))
	for _, ord := range aggregates {
		if ord.LabelStatus() != order.LabelPending {
			continue
		}

		resp := GetPendingLabelOrdersQueryResponse{
			ID:             ord.ID(),
			ExternalRef:    ord.ExternalRef(),
			RecipientName:  ord.Recipient().Name(),
			BookingRef:     ord.BookingRef(),
			ShipmentStatus: ord.ShipmentStatus().String(),
		}
		if sel := ord.FreightSelection(); sel != nil {
			resp.CarrierName = sel.CarrierName()
			resp.FreightPrice = sel.Price()
		}
		responses = append(responses, resp)
	}
	return responses
}
