package shipment

import (
	"fmt"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/errs"
)

// OriginProfile is a configured sender address used as the shipment origin.
// Profiles are maintained in the settings screens; the workflow only reads them.
type OriginProfile struct {
	ID         kernel.UUID
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

// Validate checks the minimum an origin profile needs to act as a sender.
func (p OriginProfile) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return err
	}
	if p.Name == "" {
		return errs.NewValueIsRequiredError("origin profile name")
	}
	return nil
}

// PackageProfile is a configured parcel preset: box dimensions and weight
// used as shipment defaults.
type PackageProfile struct {
	ID       kernel.UUID
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	WeightKg float64
}

// Validate checks that all dimensions and the weight are positive.
func (p PackageProfile) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"height": p.HeightCm,
		"width":  p.WidthCm,
		"length": p.LengthCm,
		"weight": p.WeightKg,
	} {
		if v <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"package profile is invalid",
				fmt.Errorf("%s must be greater than 0", name),
			)
		}
	}
	return nil
}
