package order

import (
	"errors"
	"time"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrBookingRefAlreadySet is returned when a booking confirmation arrives for an
	// order that already carries a booking reference. The reference is never replaced.
	ErrBookingRefAlreadySet = errors.New("booking reference is already set")
)

// Order represents a retail order going through the quick-ship workflow.
// It is the aggregate root that manages the shipment lifecycle from quoting
// through booking to label issuance.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and at least one line item
//   - The shipment status transitions follow the defined state machine
//   - The label status tag only moves forward, and only after a successful label call
//   - The booking reference, once set, is never cleared
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. Orders are created upstream by
// order intake; this core only mutates them.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// externalRef is the reference the order carries in upstream systems
	externalRef string

	// recipient is the read-only customer snapshot
	recipient Recipient

	// items are the ordered product lines
	items []LineItem

	// urgent marks orders flagged for expedited handling
	urgent bool

	// freightSelection is the stored carrier quote (nil until a fresh booking stores one)
	freightSelection *FreightSelection

	// bookingRef is the opaque reference from the booking provider ("" until booked)
	bookingRef string

	// labelStatus is the forward-only label availability tag
	labelStatus LabelStatus

	// shipmentStatus is the persisted workflow state
	shipmentStatus ShipmentStatus

	// createdAt is set at intake and preserved across restores
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in its initial state: shipment status NoQuote,
// label tag NotReleased, no stored freight selection and no booking reference.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - externalRef: Upstream reference for the order
//   - recipient: Customer snapshot (must be constructed via NewRecipient)
//   - items: Ordered lines (at least one)
//   - urgent: Expedited-handling flag
//
// Returns a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	externalRef string,
	recipient Recipient,
	items []LineItem,
	urgent bool,
) (*Order, error) {
	o := &Order{
		recipient:      recipient,
		urgent:         urgent,
		labelStatus:    LabelNotReleased,
		shipmentStatus: StatusNoQuote,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setExternalRef(externalRef),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including workflow
// state written by previous quick-ship runs. It validates the identifier
// and both status values so corrupted rows never become live aggregates.
func RestoreOrder(
	id kernel.UUID,
	externalRef string,
	recipient Recipient,
	items []LineItem,
	urgent bool,
	freightSelection *FreightSelection,
	bookingRef string,
	labelStatus LabelStatus,
	shipmentStatus ShipmentStatus,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		recipient:        recipient,
		urgent:           urgent,
		freightSelection: freightSelection,
		bookingRef:       bookingRef,
		createdAt:        createdAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setExternalRef(externalRef),
		o.setItems(items),
		labelStatus.Validate(),
		shipmentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.labelStatus = labelStatus
	o.shipmentStatus = shipmentStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
// Returns ErrOrderIsNotConstructed otherwise. Called when reconstructing orders
// from persistence and at the start of every repository write.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ExternalRef returns the upstream reference for the order.
func (o *Order) ExternalRef() string {
	return o.externalRef
}

// Recipient returns the customer snapshot.
func (o *Order) Recipient() Recipient {
	return o.recipient
}

// Items returns a copy of the ordered lines.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Urgent reports whether the order is flagged for expedited handling.
func (o *Order) Urgent() bool {
	return o.urgent
}

// FreightSelection returns the stored carrier quote, or nil when the order
// has never been booked with a fresh quote.
func (o *Order) FreightSelection() *FreightSelection {
	return o.freightSelection
}

// BookingRef returns the booking provider reference, empty until booked.
func (o *Order) BookingRef() string {
	return o.bookingRef
}

// LabelStatus returns the label availability tag.
func (o *Order) LabelStatus() LabelStatus {
	return o.labelStatus
}

// ShipmentStatus returns the persisted workflow state.
func (o *Order) ShipmentStatus() ShipmentStatus {
	return o.shipmentStatus
}

// CreatedAt returns the intake timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeclaredValue returns the insured/declared value for the shipment:
// the sum of quantity times unit price over all line items, floored at 1
// so zero-value submissions never reach a provider.
func (o *Order) DeclaredValue() float64 {
	var total float64
	for _, item := range o.items {
		total += item.Total()
	}
	if total < 1 {
		return 1
	}
	return total
}

// ConfirmBooking records a successful submission to the booking provider:
// it stores the booking reference, transitions the shipment status to Booked
// and, when a fresh quote was used, stores the selection for future reuse.
//
// The booking reference is written exactly once. A second confirmation
// returns ErrBookingRefAlreadySet without touching the order.
func (o *Order) ConfirmBooking(bookingRef string, selection *FreightSelection) error {
	if bookingRef == "" {
		return errs.NewValueIsRequiredError("booking reference")
	}
	if o.bookingRef != "" {
		return ErrBookingRefAlreadySet
	}

	newStatus, err := o.shipmentStatus.Book()
	if err != nil {
		return err
	}

	o.shipmentStatus = newStatus
	o.bookingRef = bookingRef
	if selection != nil {
		sel := *selection
		o.freightSelection = &sel
	}
	o.labelStatus = LabelPending
	return nil
}

// StartLabelIssuance marks the order as undergoing a label run.
// Valid from Booked, LabelFailed (explicit retry) and LabelPending
// (resuming an interrupted run).
func (o *Order) StartLabelIssuance() error {
	newStatus, err := o.shipmentStatus.StartLabel()
	if err != nil {
		return err
	}
	o.shipmentStatus = newStatus
	return nil
}

// CompleteLabelIssuance records a successful label call: the shipment status
// moves to LabelDone and the label tag advances to Available. The tag never
// regresses; a failed label call must not reach this method.
func (o *Order) CompleteLabelIssuance() error {
	newStatus, err := o.shipmentStatus.CompleteLabel()
	if err != nil {
		return err
	}

	newTag, err := o.labelStatus.Advance()
	if err != nil {
		return err
	}

	o.shipmentStatus = newStatus
	o.labelStatus = newTag
	return nil
}

// FailLabelIssuance records that both label attempts produced a hard error.
// The booking reference is preserved and the label tag is left untouched,
// so the order remains visible in the pending-label view.
func (o *Order) FailLabelIssuance() error {
	newStatus, err := o.shipmentStatus.FailLabel()
	if err != nil {
		return err
	}
	o.shipmentStatus = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setExternalRef validates and sets the upstream reference.
// This is a private method used only during construction.
func (o *Order) setExternalRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("external reference")
	}
	o.externalRef = ref
	return nil
}

// setItems validates and sets the ordered lines.
// This is a private method used only during construction.
func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}
