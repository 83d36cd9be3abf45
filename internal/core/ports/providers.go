package ports

import (
	"context"
	"errors"
	"fmt"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/shipment"
)

// ErrProviderFailure is the sentinel all freight provider call failures
// unwrap to. Transport adapters wrap it in a ProviderError carrying the
// response details.
var ErrProviderFailure = errors.New("freight provider request failed")

// ProviderError describes a failed call to a freight provider endpoint.
// Body is truncated by the adapter before it gets here; it is safe to log
// and to store in audit entries.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return ErrProviderFailure
}

// RateShopper requests freight quotes from the rate-shopping provider.
// Per-entry provider failures come back as quotes with Errored set, not as
// a call error; a call error means no quotes were obtained at all.
type RateShopper interface {
	GetQuotes(ctx context.Context, request shipment.Request) ([]shipment.Quote, error)
}

// BookingService submits a shipment with its chosen quote to the booking/cart
// provider. The adapter is responsible for extracting the booking reference
// from whichever response shape the provider uses; callers always receive a
// plain non-empty reference on success.
type BookingService interface {
	Submit(ctx context.Context, request shipment.Request, quote shipment.Quote) (string, error)
}

// LabelService requests label generation for a booked shipment.
type LabelService interface {
	RequestLabel(ctx context.Context, orderID kernel.UUID, bookingRef string) (shipment.LabelResult, error)
}
