package order

import (
	"quickship/internal/pkg/errs"
)

// Recipient is the customer snapshot attached to an order. It is a read-only
// input to the quick-ship workflow: the workflow reads it when building the
// shipment payload but never mutates it.
//
// Fields other than the name may be empty; the shipment request builder
// fills gaps from the order's previously stored provider payload or from
// hard-coded defaults. Only the destination postal code is validated, and
// that happens in the builder, not here.
type Recipient struct {
	name       string
	email      string
	phone      string
	taxID      string
	street     string
	complement string
	city       string
	state      string
	postalCode string
}

// NewRecipient creates a recipient snapshot. The name is required; all other
// fields are optional and default-filled later by the request builder.
func NewRecipient(name, email, phone, taxID, street, complement, city, state, postalCode string) (Recipient, error) {
	if name == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}

	return Recipient{
		name:       name,
		email:      email,
		phone:      phone,
		taxID:      taxID,
		street:     street,
		complement: complement,
		city:       city,
		state:      state,
		postalCode: postalCode,
	}, nil
}

// Name returns the recipient's full name.
func (r Recipient) Name() string { return r.name }

// Email returns the recipient's contact email, possibly empty.
func (r Recipient) Email() string { return r.email }

// Phone returns the recipient's contact phone, possibly empty.
func (r Recipient) Phone() string { return r.phone }

// TaxID returns the recipient's tax identifier, possibly empty.
func (r Recipient) TaxID() string { return r.taxID }

// Street returns the destination street address, possibly empty.
func (r Recipient) Street() string { return r.street }

// Complement returns the address complement, possibly empty.
func (r Recipient) Complement() string { return r.complement }

// City returns the destination city, possibly empty.
func (r Recipient) City() string { return r.city }

// State returns the destination state, possibly empty.
func (r Recipient) State() string { return r.state }

// PostalCode returns the destination postal code as stored, possibly empty
// and possibly formatted with separators.
func (r Recipient) PostalCode() string { return r.postalCode }
