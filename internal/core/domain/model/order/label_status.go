package order

import (
	"fmt"

	"quickship/internal/pkg/errs"
)

// LabelStatus is the forward-only tag describing label availability for an order.
// It only advances after a successful label provider call; a failed call must
// leave it untouched.
//
//	NotReleased ──> Pending ──> Available
//	      └─────────────────────────▲
type LabelStatus int

const (
	// LabelNotReleased means no label has been requested for the order.
	LabelNotReleased LabelStatus = iota

	// LabelPending means the order is waiting for a label ("label pending" list view).
	LabelPending

	// LabelAvailable means the label provider confirmed issuance.
	LabelAvailable
)

func getLabelStatusStrings() map[LabelStatus]string {
	return map[LabelStatus]string{
		LabelNotReleased: "NotReleased",
		LabelPending:     "Pending",
		LabelAvailable:   "Available",
	}
}

// Validate checks if the LabelStatus value is one of the defined tags.
func (s LabelStatus) Validate() error {
	if _, ok := getLabelStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"label status is invalid",
			fmt.Errorf("%d is not a valid label status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the tag.
func (s LabelStatus) String() string {
	if str, ok := getLabelStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Advance transitions the tag to Available. The tag is monotonic:
// NotReleased and Pending advance, Available stays Available, and any
// other value is rejected. There is no transition away from Available.
func (s LabelStatus) Advance() (LabelStatus, error) {
	switch s {
	case LabelNotReleased, LabelPending, LabelAvailable:
		return LabelAvailable, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"label status is invalid",
			fmt.Errorf("%s is not a valid label status to advance", s.String()),
		)
	}
}
