package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"quickship/internal/core/domain/model/order"
	"quickship/internal/core/domain/model/shipment"
	"quickship/internal/pkg/errs"
)

// Hard-coded defaults applied when neither the current records nor the
// order's stored provider payload carry a value.
const (
	defaultEmail        = "customer@example.com"
	defaultParcelWidth  = 20.0
	defaultParcelLength = 20.0
	defaultParcelHeight = 5.0
	defaultParcelWeight = 1.0
	postalCodeLength    = 8
)

// RequestBuilder is a domain service that assembles the normalized shipment
// payload from an order, its recipient snapshot, the resolved origin profile
// and package profile.
//
// Field precedence, applied per field:
//  1. Explicit current record values (recipient, origin profile, package profile)
//  2. Values copied from the order's previously stored raw provider payload
//  3. Hard-coded defaults
//
// Declared value is the sum of quantity times unit price over line items,
// floored at 1 to avoid zero-value submissions. Postal codes are stripped to
// digits; the destination postal code must resolve to exactly 8 digits or the
// build fails before any network call is made.
type RequestBuilder struct{}

// NewRequestBuilder creates a new RequestBuilder instance.
func NewRequestBuilder() RequestBuilder {
	return RequestBuilder{}
}

// storedPayload mirrors the shape of the raw provider payload kept with a
// stored freight selection. All fields are optional; absent values simply
// do not participate in the fallback.
type storedPayload struct {
	To struct {
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		TaxID      string `json:"document"`
		Street     string `json:"address"`
		Complement string `json:"complement"`
		City       string `json:"city"`
		State      string `json:"state_abbr"`
		PostalCode string `json:"postal_code"`
	} `json:"to"`
	From struct {
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		TaxID      string `json:"document"`
		Street     string `json:"address"`
		Complement string `json:"complement"`
		City       string `json:"city"`
		State      string `json:"state_abbr"`
		PostalCode string `json:"postal_code"`
	} `json:"from"`
	Package struct {
		Height float64 `json:"height"`
		Width  float64 `json:"width"`
		Length float64 `json:"length"`
		Weight float64 `json:"weight"`
	} `json:"package"`
}

// Build assembles the shipment request. Returns a validation error wrapping
// errs.ErrValueIsInvalid when the destination postal code is missing or is
// not exactly 8 digits after stripping non-digit characters.
func (b RequestBuilder) Build(
	ord *order.Order,
	origin shipment.OriginProfile,
	pkg shipment.PackageProfile,
) (shipment.Request, error) {
	if err := ord.Validate(); err != nil {
		return shipment.Request{}, err
	}

	stored := b.parseStoredPayload(ord)
	recipient := ord.Recipient()

	destination := shipment.Party{
		Name:       recipient.Name(),
		Email:      coalesce(recipient.Email(), stored.To.Email, defaultEmail),
		Phone:      coalesce(recipient.Phone(), stored.To.Phone),
		TaxID:      coalesce(recipient.TaxID(), stored.To.TaxID),
		Street:     coalesce(recipient.Street(), stored.To.Street),
		Complement: coalesce(recipient.Complement(), stored.To.Complement),
		City:       coalesce(recipient.City(), stored.To.City),
		State:      coalesce(recipient.State(), stored.To.State),
		PostalCode: digitsOnly(coalesce(recipient.PostalCode(), stored.To.PostalCode)),
	}

	if len(destination.PostalCode) != postalCodeLength {
		return shipment.Request{}, errs.NewValueIsInvalidErrorWithCause(
			"recipient postal code",
			fmt.Errorf("missing or invalid: %q does not resolve to %d digits", destination.PostalCode, postalCodeLength),
		)
	}

	originParty := shipment.Party{
		Name:       origin.Name,
		Email:      coalesce(origin.Email, stored.From.Email, defaultEmail),
		Phone:      coalesce(origin.Phone, stored.From.Phone),
		TaxID:      coalesce(origin.TaxID, stored.From.TaxID),
		Street:     coalesce(origin.Street, stored.From.Street),
		Complement: coalesce(origin.Complement, stored.From.Complement),
		City:       coalesce(origin.City, stored.From.City),
		State:      coalesce(origin.State, stored.From.State),
		PostalCode: digitsOnly(origin.PostalCode),
	}

	parcel := shipment.Parcel{
		HeightCm: coalesceFloat(pkg.HeightCm, stored.Package.Height, defaultParcelHeight),
		WidthCm:  coalesceFloat(pkg.WidthCm, stored.Package.Width, defaultParcelWidth),
		LengthCm: coalesceFloat(pkg.LengthCm, stored.Package.Length, defaultParcelLength),
		WeightKg: coalesceFloat(pkg.WeightKg, stored.Package.Weight, defaultParcelWeight),
	}

	items := make([]shipment.RequestItem, 0, len(ord.Items()))
	for _, li := range ord.Items() {
		items = append(items, shipment.RequestItem{
			ProductID: li.ProductID(),
			VariantID: li.VariantID(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice(),
		})
	}

	return shipment.Request{
		Origin:        originParty,
		Destination:   destination,
		Parcel:        parcel,
		Items:         items,
		DeclaredValue: ord.DeclaredValue(),
	}, nil
}

// parseStoredPayload decodes the raw provider payload kept with the order's
// stored freight selection. A missing selection or malformed payload yields
// an empty fallback, never an error: the stored payload is a best-effort
// second source, not an input contract.
func (b RequestBuilder) parseStoredPayload(ord *order.Order) storedPayload {
	var stored storedPayload
	sel := ord.FreightSelection()
	if sel == nil || sel.RawPayload() == "" {
		return stored
	}
	_ = json.Unmarshal([]byte(sel.RawPayload()), &stored)
	return stored
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// coalesceFloat returns the first positive value.
func coalesceFloat(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// digitsOnly strips every non-digit rune from s.
func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
