package order

import (
	"fmt"

	"quickship/internal/pkg/errs"
)

// FreightSelection is the carrier quote stored on an order after a booking,
// kept so a later invocation can reuse the same carrier instead of calling
// the rate-shopping provider again. The raw provider payload is preserved
// verbatim: the shipment request builder falls back to it for fields the
// current records no longer carry.
type FreightSelection struct {
	carrierServiceID int
	carrierName      string
	serviceName      string
	price            float64
	deliveryDays     int
	rawPayload       string
}

// NewFreightSelection creates a stored freight selection. The carrier-service
// identifier must be positive and the price must not be negative.
func NewFreightSelection(
	carrierServiceID int,
	carrierName string,
	serviceName string,
	price float64,
	deliveryDays int,
	rawPayload string,
) (FreightSelection, error) {
	if carrierServiceID <= 0 {
		return FreightSelection{}, errs.NewValueIsInvalidErrorWithCause(
			"carrier service ID is invalid",
			fmt.Errorf("%d is not greater than 0", carrierServiceID),
		)
	}
	if price < 0 {
		return FreightSelection{}, errs.NewValueIsInvalidErrorWithCause(
			"freight price is invalid",
			fmt.Errorf("%.2f is negative", price),
		)
	}

	return FreightSelection{
		carrierServiceID: carrierServiceID,
		carrierName:      carrierName,
		serviceName:      serviceName,
		price:            price,
		deliveryDays:     deliveryDays,
		rawPayload:       rawPayload,
	}, nil
}

// CarrierServiceID returns the provider's carrier/service identifier,
// the key matched against the blocked-carrier set.
func (fs FreightSelection) CarrierServiceID() int { return fs.carrierServiceID }

// CarrierName returns the carrier company name.
func (fs FreightSelection) CarrierName() string { return fs.carrierName }

// ServiceName returns the carrier service name.
func (fs FreightSelection) ServiceName() string { return fs.serviceName }

// Price returns the quoted freight price.
func (fs FreightSelection) Price() float64 { return fs.price }

// DeliveryDays returns the delivery estimate in days.
func (fs FreightSelection) DeliveryDays() int { return fs.deliveryDays }

// RawPayload returns the raw provider response stored with the selection.
func (fs FreightSelection) RawPayload() string { return fs.rawPayload }
