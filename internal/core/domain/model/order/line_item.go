package order

import (
	"fmt"

	"quickship/internal/pkg/errs"
)

// LineItem is an ordered product line: a product/variant reference with a
// quantity and the unit price charged. Line items feed the declared value
// calculation for the shipment.
type LineItem struct {
	productID string
	variantID string
	quantity  int
	unitPrice float64
}

// NewLineItem creates a line item. Quantity must be positive and the unit
// price must not be negative.
func NewLineItem(productID, variantID string, quantity int, unitPrice float64) (LineItem, error) {
	if productID == "" {
		return LineItem{}, errs.NewValueIsRequiredError("product ID")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%.2f is negative", unitPrice),
		)
	}

	return LineItem{
		productID: productID,
		variantID: variantID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the product reference.
func (li LineItem) ProductID() string { return li.productID }

// VariantID returns the variant reference, possibly empty.
func (li LineItem) VariantID() string { return li.variantID }

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the unit price charged.
func (li LineItem) UnitPrice() float64 { return li.unitPrice }

// Total returns quantity times unit price.
func (li LineItem) Total() float64 {
	return float64(li.quantity) * li.unitPrice
}
