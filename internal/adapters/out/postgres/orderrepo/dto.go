// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// One row carries the full quick-ship state: the recipient snapshot, the
// line items, the stored freight selection, the booking reference and both
// workflow statuses, plus the processing flag used for cross-process claims.
type OrderDTO struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ExternalRef string        `gorm:"index"`
	Recipient   RecipientDTO  `gorm:"embedded;embeddedPrefix:recipient_"`
	Items       []LineItemDTO `gorm:"serializer:json;type:jsonb"`
	Urgent      bool

	CarrierServiceID int
	CarrierName      string
	ServiceName      string
	FreightPrice     float64
	DeliveryDays     int
	RawPayload       string `gorm:"type:text"`

	BookingRef     string `gorm:"index"`
	LabelStatus    int    `gorm:"index"`
	ShipmentStatus int    `gorm:"index"`
	Processing     bool
	CreatedAt      time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// RecipientDTO represents the embedded recipient snapshot within the order table.
type RecipientDTO struct {
	Name       string
	Email      string
	Phone      string
	TaxID      string
	Street     string
	Complement string
	City       string
	State      string
	PostalCode string
}

// LineItemDTO represents one ordered line inside the items JSON column.
type LineItemDTO struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// fromDomain converts an order domain aggregate to its database representation.
// An order without a stored freight selection persists zero carrier columns.
func fromDomain(aggregate *order.Order) OrderDTO {
	recipient := aggregate.Recipient()

	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for _, li := range aggregate.Items() {
		items = append(items, LineItemDTO{
			ProductID: li.ProductID(),
			VariantID: li.VariantID(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice(),
		})
	}

	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		ExternalRef: aggregate.ExternalRef(),
		Recipient: RecipientDTO{
			Name:       recipient.Name(),
			Email:      recipient.Email(),
			Phone:      recipient.Phone(),
			TaxID:      recipient.TaxID(),
			Street:     recipient.Street(),
			Complement: recipient.Complement(),
			City:       recipient.City(),
			State:      recipient.State(),
			PostalCode: recipient.PostalCode(),
		},
		Items:          items,
		Urgent:         aggregate.Urgent(),
		BookingRef:     aggregate.BookingRef(),
		LabelStatus:    int(aggregate.LabelStatus()),
		ShipmentStatus: int(aggregate.ShipmentStatus()),
		CreatedAt:      aggregate.CreatedAt(),
	}

	if sel := aggregate.FreightSelection(); sel != nil {
		dto.CarrierServiceID = sel.CarrierServiceID()
		dto.CarrierName = sel.CarrierName()
		dto.ServiceName = sel.ServiceName()
		dto.FreightPrice = sel.Price()
		dto.DeliveryDays = sel.DeliveryDays()
		dto.RawPayload = sel.RawPayload()
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including both statuses and the
// stored freight selection using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipient, err := order.NewRecipient(
		dto.Recipient.Name,
		dto.Recipient.Email,
		dto.Recipient.Phone,
		dto.Recipient.TaxID,
		dto.Recipient.Street,
		dto.Recipient.Complement,
		dto.Recipient.City,
		dto.Recipient.State,
		dto.Recipient.PostalCode,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := order.NewLineItem(it.ProductID, it.VariantID, it.Quantity, it.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var selection *order.FreightSelection
	if dto.CarrierServiceID != 0 {
		sel, selErr := order.NewFreightSelection(
			dto.CarrierServiceID,
			dto.CarrierName,
			dto.ServiceName,
			dto.FreightPrice,
			dto.DeliveryDays,
			dto.RawPayload,
		)
		if selErr != nil {
			return nil, selErr
		}
		selection = &sel
	}

	return order.RestoreOrder(
		id,
		dto.ExternalRef,
		recipient,
		items,
		dto.Urgent,
		selection,
		dto.BookingRef,
		order.LabelStatus(dto.LabelStatus),
		order.ShipmentStatus(dto.ShipmentStatus),
		dto.CreatedAt,
	)
}
