package services

import (
	"errors"
	"fmt"

	"quickship/internal/core/domain/model/order"
	"quickship/internal/core/domain/model/shipment"
)

// Sentinel errors for quote selection. Callers classify with errors.Is;
// the typed errors below carry the details.
var (
	ErrBlockedCarrier = errors.New("carrier is blocked for this tenant")
	ErrNoValidQuote   = errors.New("no valid freight quote")
)

// BlockedCarrierError indicates that the order's stored freight selection
// names a carrier the tenant has since blocked. The stored selection cannot
// be reused; the caller must request fresh quotes.
type BlockedCarrierError struct {
	CarrierServiceID int
	CarrierName      string
}

func (e *BlockedCarrierError) Error() string {
	if e.CarrierName != "" {
		return fmt.Sprintf("carrier %d (%s) is blocked for this tenant", e.CarrierServiceID, e.CarrierName)
	}
	return fmt.Sprintf("carrier %d is blocked for this tenant", e.CarrierServiceID)
}

func (e *BlockedCarrierError) Unwrap() error {
	return ErrBlockedCarrier
}

// NoValidQuoteError indicates that filtering left no usable quote.
// Blocked distinguishes "everything was filtered by the blocked-carrier set"
// from "the provider returned nothing usable in the first place".
type NoValidQuoteError struct {
	Blocked bool
}

func (e *NoValidQuoteError) Error() string {
	if e.Blocked {
		return "all available options are blocked for this tenant"
	}
	return "no freight option available"
}

func (e *NoValidQuoteError) Unwrap() error {
	return ErrNoValidQuote
}

// QuoteSelector is a domain service that picks the freight quote to book.
//
// Selection rules:
//   - Quotes the provider flagged as errored are discarded
//   - Quotes whose carrier/service id is in the blocked set are discarded
//   - Of the remainder, the single cheapest quote wins
//   - Ties resolve to the first minimum in provider return order, making
//     selection deterministic and reproducible
type QuoteSelector struct{}

// NewQuoteSelector creates a new QuoteSelector instance.
func NewQuoteSelector() QuoteSelector {
	return QuoteSelector{}
}

// Select applies the filtering rules and returns the cheapest valid quote.
// Returns a NoValidQuoteError when nothing survives filtering; its Blocked
// field is set only when at least one otherwise-usable quote was excluded
// by the blocked-carrier set.
func (s QuoteSelector) Select(
	quotes []shipment.Quote,
	blocked shipment.BlockedCarrierSet,
) (shipment.Quote, error) {
	var best shipment.Quote
	found := false
	blockedHit := false

	for _, q := range quotes {
		if q.Errored {
			continue
		}
		if blocked.Has(q.CarrierServiceID) {
			blockedHit = true
			continue
		}
		if !found || q.Price < best.Price {
			best = q
			found = true
		}
	}

	if !found {
		return shipment.Quote{}, &NoValidQuoteError{Blocked: blockedHit}
	}
	return best, nil
}

// CheckReuse validates that an order's stored freight selection is still
// allowed for the tenant. Returns a BlockedCarrierError naming the carrier
// when the stored carrier/service id is blocked; the booking provider must
// not be called in that case.
func (s QuoteSelector) CheckReuse(
	selection order.FreightSelection,
	blocked shipment.BlockedCarrierSet,
) error {
	if blocked.Has(selection.CarrierServiceID()) {
		return &BlockedCarrierError{
			CarrierServiceID: selection.CarrierServiceID(),
			CarrierName:      selection.CarrierName(),
		}
	}
	return nil
}
