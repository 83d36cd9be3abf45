package order

import (
	"fmt"

	"quickship/internal/pkg/errs"
)

// ShipmentStatus represents the fulfillment state of an order's shipment.
// It implements a persisted state machine so the workflow is resumable:
// a run that fails after booking leaves the order in a state from which
// a later run continues at the label phase instead of re-booking.
//
// State transitions:
//
//	NoQuote ──> Booked ──> LabelPending ──┬──> LabelDone
//	                            ▲         │
//	                            │         └──> LabelFailed
//	                            └──────────────────┘
//	                  (explicit re-invocation only)
//
// ShipmentStatus is a value object that validates state transitions
// and provides string representations for persistence and display.
type ShipmentStatus int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized ShipmentStatus values.
	StatusUnknown ShipmentStatus = iota

	// StatusNoQuote is the initial status: the order has not been submitted
	// to the booking provider. A stored freight selection may exist.
	StatusNoQuote

	// StatusBooked indicates the shipment was accepted by the booking provider
	// and a booking reference is stored on the order.
	StatusBooked

	// StatusLabelPending indicates a label issuance run is underway for the booking.
	StatusLabelPending

	// StatusLabelDone indicates the label provider confirmed issuance.
	// This is a final state.
	StatusLabelDone

	// StatusLabelFailed indicates both label attempts produced a hard error.
	// The booking is preserved; an explicit re-invocation moves the order
	// back to StatusLabelPending.
	StatusLabelFailed
)

func getStatusStrings() map[ShipmentStatus]string {
	return map[ShipmentStatus]string{
		StatusUnknown:      "Unknown",
		StatusNoQuote:      "NoQuote",
		StatusBooked:       "Booked",
		StatusLabelPending: "LabelPending",
		StatusLabelDone:    "LabelDone",
		StatusLabelFailed:  "LabelFailed",
	}
}

func getValidStatusStrings() map[ShipmentStatus]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[ShipmentStatus]string{
		StatusNoQuote:      "NoQuote",
		StatusBooked:       "Booked",
		StatusLabelPending: "LabelPending",
		StatusLabelDone:    "LabelDone",
		StatusLabelFailed:  "LabelFailed",
	}
}

// Validate checks if the ShipmentStatus value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
// Used to reject status values coming from persistence or external callers.
func (s ShipmentStatus) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s ShipmentStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Book transitions the status to Booked.
//
// Valid transitions:
//   - NoQuote -> Booked
//
// Returns (0, error) for any other starting state: an already booked order
// must not be submitted to the booking provider again.
func (s ShipmentStatus) Book() (ShipmentStatus, error) {
	if s != StatusNoQuote {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%s is not a valid status to book", s.String()),
		)
	}
	return StatusBooked, nil
}

// StartLabel transitions the status to LabelPending.
//
// Valid transitions:
//   - Booked -> LabelPending (first label run after booking)
//   - LabelFailed -> LabelPending (explicit re-invocation)
//   - LabelPending -> LabelPending (resuming an interrupted run)
func (s ShipmentStatus) StartLabel() (ShipmentStatus, error) {
	if s != StatusBooked && s != StatusLabelFailed && s != StatusLabelPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%s is not a valid status to start label issuance", s.String()),
		)
	}
	return StatusLabelPending, nil
}

// CompleteLabel transitions the status to LabelDone.
//
// Valid transitions:
//   - LabelPending -> LabelDone
//
// LabelDone is a final state with no further transitions.
func (s ShipmentStatus) CompleteLabel() (ShipmentStatus, error) {
	if s != StatusLabelPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%s is not a valid status to complete label issuance", s.String()),
		)
	}
	return StatusLabelDone, nil
}

// FailLabel transitions the status to LabelFailed.
//
// Valid transitions:
//   - LabelPending -> LabelFailed
//
// The booking reference is preserved; only an explicit re-invocation
// moves a failed order back into the label phase.
func (s ShipmentStatus) FailLabel() (ShipmentStatus, error) {
	if s != StatusLabelPending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%s is not a valid status to fail label issuance", s.String()),
		)
	}
	return StatusLabelFailed, nil
}

// IsBooked reports whether the order has passed the booking stage.
func (s ShipmentStatus) IsBooked() bool {
	return s == StatusBooked || s == StatusLabelPending || s == StatusLabelDone || s == StatusLabelFailed
}
