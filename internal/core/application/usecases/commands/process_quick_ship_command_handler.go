package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
	"quickship/internal/core/domain/model/shipment"
	"quickship/internal/core/domain/services"
	"quickship/internal/core/ports"
	"quickship/internal/pkg/errs"
	"quickship/internal/pkg/inflight"
	"quickship/internal/pkg/metrics"
)

// ErrShipmentInProgress is returned when a quick-ship run is already active
// for the order, either in this process or claimed in the store by another.
var ErrShipmentInProgress = errors.New("shipment processing is already in progress for this order")

const auditErrorLimit = 200

// OrderClaimer marks orders as being processed. The claim executes outside
// the workflow transactions so it is immediately visible to other sessions.
type OrderClaimer interface {
	Claim(ctx context.Context, id kernel.UUID) error
	Release(ctx context.Context, id kernel.UUID) error
}

// RetryPolicy bounds the label issuance retry loop. Delays grow
// exponentially from BaseDelay with up to 25% random jitter.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy returns the stock policy: two attempts with an 800ms
// base delay between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		BaseDelay:   800 * time.Millisecond,
	}
}

// Validate checks the policy bounds.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return errs.NewValueIsOutOfRangeError("retry max attempts", p.MaxAttempts, 1, 10)
	}
	if p.BaseDelay < 0 {
		return errs.NewValueIsRequiredError("retry base delay")
	}
	return nil
}

// delay returns the pause before the given attempt (the first attempt is 1
// and never waits).
func (p RetryPolicy) delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	d := p.BaseDelay << (attempt - 2)
	if d <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Int64N(int64(d)/4 + 1))
	return d + jitter
}

// ProfileDefaults names the configured default sender and package profiles.
// Empty values mean "first profile in listing order".
type ProfileDefaults struct {
	OriginProfileID  string
	PackageProfileID string
}

// ProcessQuickShipResult is what a completed (or partially completed) run
// hands back to the caller.
type ProcessQuickShipResult struct {
	// BookingRef is set once the booking provider accepted the shipment,
	// even when the subsequent label phase failed.
	BookingRef string

	// LabelURL is the printable label location, empty when the provider
	// returned only an identifier or an ambiguous payload.
	LabelURL string

	// Warnings carries non-fatal sub-failures, such as a blocked-carrier
	// list that could not be loaded.
	Warnings []string
}

// ProcessQuickShipCommandHandler orchestrates the quote-to-label workflow:
// resolve shipping configuration, reuse or shop a freight quote, exclude
// blocked carriers, submit the booking, then drive label issuance with
// bounded retry.
//
// The run uses two transactions. The first commits the booking reference,
// the stored freight selection and the audit entry, so a crash during the
// label phase leaves a resumable Booked order rather than a double-bookable
// one. The second commits the label outcome.
//
// Example:
//
//	handler := NewProcessQuickShipCommandHandler(
//	    uowFactory, claimer, profiles, blocked,
//	    rates, booking, labels,
//	    notifier, cache, inflightGuard,
//	    ProfileDefaults{}, DefaultRetryPolicy(),
//	)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrShipmentInProgress):
//	    // 409: another run holds the order
//	case errors.Is(err, services.ErrNoValidQuote):
//	    // 422: nothing bookable after filtering
//	case errors.Is(err, ports.ErrProviderFailure):
//	    // 502: a provider call failed
//	case err != nil:
//	    // 400: validation or state error
//	default:
//	    fmt.Println(result.BookingRef, result.LabelURL)
//	}
type ProcessQuickShipCommandHandler struct {
	uowFactory UoWFactory
	claimer    OrderClaimer
	profiles   ports.ProfileRepository
	blocked    ports.BlockedCarrierRepository
	rates      ports.RateShopper
	booking    ports.BookingService
	labels     ports.LabelService
	notifier   ports.Notifier
	cache      ports.OrderListCache
	guard      *inflight.Guard
	defaults   ProfileDefaults
	retry      RetryPolicy
}

// NewProcessQuickShipCommandHandler wires the workflow dependencies together.
func NewProcessQuickShipCommandHandler(
	uowFactory UoWFactory,
	claimer OrderClaimer,
	profiles ports.ProfileRepository,
	blocked ports.BlockedCarrierRepository,
	rates ports.RateShopper,
	booking ports.BookingService,
	labels ports.LabelService,
	notifier ports.Notifier,
	cache ports.OrderListCache,
	guard *inflight.Guard,
	defaults ProfileDefaults,
	retry RetryPolicy,
) ProcessQuickShipCommandHandler {
	return ProcessQuickShipCommandHandler{
		uowFactory: uowFactory,
		claimer:    claimer,
		profiles:   profiles,
		blocked:    blocked,
		rates:      rates,
		booking:    booking,
		labels:     labels,
		notifier:   notifier,
		cache:      cache,
		guard:      guard,
		defaults:   defaults,
		retry:      retry,
	}
}

// Handle runs the workflow for one order. Exactly one error notification or
// one success notification reaches the notifier per run.
func (h ProcessQuickShipCommandHandler) Handle(
	ctx context.Context,
	command ProcessQuickShipCommand,
) (ProcessQuickShipResult, error) {
	if err := command.Validate(); err != nil {
		return ProcessQuickShipResult{}, err
	}
	if err := h.retry.Validate(); err != nil {
		return ProcessQuickShipResult{}, err
	}

	orderID := command.OrderID()

	if !h.guard.TryAcquire(orderID.String()) {
		return ProcessQuickShipResult{}, h.fail(ctx, "claim", ErrShipmentInProgress)
	}
	defer h.guard.Release(orderID.String())

	if err := h.claimer.Claim(ctx, orderID); err != nil {
		if errors.Is(err, ports.ErrOrderAlreadyClaimed) {
			err = fmt.Errorf("%w: %w", ErrShipmentInProgress, err)
		}
		return ProcessQuickShipResult{}, h.fail(ctx, "claim", err)
	}
	defer func() {
		_ = h.claimer.Release(context.WithoutCancel(ctx), orderID)
	}()

	result := ProcessQuickShipResult{}

	ord, err := h.book(ctx, command, &result)
	if err != nil {
		return ProcessQuickShipResult{}, err
	}
	result.BookingRef = ord.BookingRef()

	labelURL, err := h.issueLabel(ctx, ord, &result)
	if err != nil {
		return result, err
	}
	result.LabelURL = labelURL

	h.notifier.Notify(ctx, ports.SeveritySuccess,
		fmt.Sprintf("Order %s booked as %s, label issued", ord.ExternalRef(), ord.BookingRef()))
	return result, nil
}

// book runs the first workflow phase and commits it: load and verify the
// order, resolve shipping configuration, pick a quote and submit the
// booking. Orders already booked by a previous run pass straight through so
// the label phase can resume.
func (h ProcessQuickShipCommandHandler) book(
	ctx context.Context,
	command ProcessQuickShipCommand,
	result *ProcessQuickShipResult,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, h.fail(ctx, "booking", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, h.fail(ctx, "load", err)
	}

	if ord.ShipmentStatus().IsBooked() {
		// Booking already committed by an earlier run; only the label
		// phase is outstanding.
		return ord, nil
	}

	origin, pkg, err := h.resolveProfiles(ctx)
	if err != nil {
		return nil, h.fail(ctx, "profiles", err)
	}

	blockedSet := h.loadBlockedSet(ctx, command.TenantID(), result)

	request, err := services.NewRequestBuilder().Build(ord, origin, pkg)
	if err != nil {
		return nil, h.fail(ctx, "request", err)
	}

	quote, freshSelection, err := h.pickQuote(ctx, ord, request, blockedSet)
	if err != nil {
		return nil, h.fail(ctx, "quote", err)
	}

	bookingRef, err := h.booking.Submit(ctx, request, quote)
	if err != nil {
		return nil, h.fail(ctx, "booking", err)
	}

	if err = ord.ConfirmBooking(bookingRef, freshSelection); err != nil {
		return nil, h.fail(ctx, "booking", err)
	}

	if err = h.persistBooking(ctx, uow, ord, quote); err != nil {
		return nil, h.fail(ctx, "booking", err)
	}

	metrics.BookingsSubmittedTotal.Inc()
	h.cache.Patch(ord)
	return ord, nil
}

// resolveProfiles picks the sender and package profiles for the run: the
// configured default when its ID is present in the listing, otherwise the
// first profile in listing order.
func (h ProcessQuickShipCommandHandler) resolveProfiles(
	ctx context.Context,
) (shipment.OriginProfile, shipment.PackageProfile, error) {
	origins, err := h.profiles.ListOriginProfiles(ctx)
	if err != nil {
		return shipment.OriginProfile{}, shipment.PackageProfile{}, err
	}
	if len(origins) == 0 {
		return shipment.OriginProfile{}, shipment.PackageProfile{},
			errs.NewValueIsRequiredError("configured sender profile")
	}

	packages, err := h.profiles.ListPackageProfiles(ctx)
	if err != nil {
		return shipment.OriginProfile{}, shipment.PackageProfile{}, err
	}
	if len(packages) == 0 {
		return shipment.OriginProfile{}, shipment.PackageProfile{},
			errs.NewValueIsRequiredError("configured package profile")
	}

	origin := origins[0]
	for _, p := range origins {
		if p.ID.String() == h.defaults.OriginProfileID {
			origin = p
			break
		}
	}

	pkg := packages[0]
	for _, p := range packages {
		if p.ID.String() == h.defaults.PackageProfileID {
			pkg = p
			break
		}
	}

	return origin, pkg, nil
}

// loadBlockedSet fetches the tenant's carrier blocklist. A load failure
// downgrades to a warning and an empty set: a broken settings store must not
// stop shipping, even if a normally blocked carrier can then win.
func (h ProcessQuickShipCommandHandler) loadBlockedSet(
	ctx context.Context,
	tenantID string,
	result *ProcessQuickShipResult,
) shipment.BlockedCarrierSet {
	blockedSet, err := h.blocked.GetBlockedSet(ctx, tenantID)
	if err != nil {
		msg := fmt.Sprintf("could not load blocked carriers, proceeding without exclusions: %s",
			errs.Truncate(err.Error(), auditErrorLimit))
		result.Warnings = append(result.Warnings, msg)
		h.notifier.Notify(ctx, ports.SeverityWarning, msg)
		return shipment.NewBlockedCarrierSet(nil)
	}
	return blockedSet
}

// pickQuote returns the quote to book: the order's stored freight selection
// when present and not blocked, otherwise the cheapest fresh quote. The
// third return value carries the new selection to store, nil on reuse.
func (h ProcessQuickShipCommandHandler) pickQuote(
	ctx context.Context,
	ord *order.Order,
	request shipment.Request,
	blockedSet shipment.BlockedCarrierSet,
) (shipment.Quote, *order.FreightSelection, error) {
	selector := services.NewQuoteSelector()

	if stored := ord.FreightSelection(); stored != nil {
		if err := selector.CheckReuse(*stored, blockedSet); err != nil {
			return shipment.Quote{}, nil, err
		}
		return shipment.Quote{
			CarrierServiceID: stored.CarrierServiceID(),
			CarrierName:      stored.CarrierName(),
			ServiceName:      stored.ServiceName(),
			Price:            stored.Price(),
			DeliveryDays:     stored.DeliveryDays(),
			Raw:              stored.RawPayload(),
		}, nil, nil
	}

	quotes, err := h.rates.GetQuotes(ctx, request)
	if err != nil {
		return shipment.Quote{}, nil, err
	}

	quote, err := selector.Select(quotes, blockedSet)
	if err != nil {
		return shipment.Quote{}, nil, err
	}

	selection, err := order.NewFreightSelection(
		quote.CarrierServiceID,
		quote.CarrierName,
		quote.ServiceName,
		quote.Price,
		quote.DeliveryDays,
		quote.Raw,
	)
	if err != nil {
		return shipment.Quote{}, nil, err
	}
	return quote, &selection, nil
}

// persistBooking writes the booked order, its audit entry and the outbox
// event in one transaction and commits it.
func (h ProcessQuickShipCommandHandler) persistBooking(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	quote shipment.Quote,
) error {
	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	entry, err := order.NewAuditEntry(ord.ID(), time.Now().UTC(),
		fmt.Sprintf("Shipment booked with %s %s at %.2f", quote.CarrierName, quote.ServiceName, quote.Price))
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = h.stageEvent(ctx, uow, ord, "order.booked"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// issueLabel runs the label phase: bounded retry against the label provider,
// then one transaction committing the outcome. Returns the label URL when
// the provider produced one.
func (h ProcessQuickShipCommandHandler) issueLabel(
	ctx context.Context,
	ord *order.Order,
	result *ProcessQuickShipResult,
) (string, error) {
	if err := ord.StartLabelIssuance(); err != nil {
		return "", h.fail(ctx, "label", err)
	}

	labelResult, labelErr := h.requestLabelWithRetry(ctx, ord)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", h.fail(ctx, "label", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if labelErr != nil {
		if err := h.persistLabelFailure(ctx, uow, ord, labelErr); err != nil {
			return "", h.fail(ctx, "label", err)
		}
		h.cache.Patch(ord)
		return "", h.fail(ctx, "label", labelErr)
	}

	if !labelResult.HasURL() && !labelResult.HasID() {
		msg := fmt.Sprintf("label provider response not recognized, marking label issued: %s",
			errs.Truncate(labelResult.Raw, auditErrorLimit))
		result.Warnings = append(result.Warnings, msg)
		h.notifier.Notify(ctx, ports.SeverityWarning, msg)
	}

	// The provider issued the label; a failure recording that fact must not
	// unwind it. The order stays pending-label in the store and a later
	// invocation resumes from the booking ref.
	if err := h.persistLabelSuccess(ctx, uow, ord, labelResult); err != nil {
		msg := fmt.Sprintf("label issued but its state could not be recorded: %s",
			errs.Truncate(err.Error(), auditErrorLimit))
		result.Warnings = append(result.Warnings, msg)
		h.notifier.Notify(ctx, ports.SeverityWarning, msg)
		metrics.LabelsIssuedTotal.Inc()
		return labelResult.URL, nil
	}

	metrics.LabelsIssuedTotal.Inc()
	h.cache.Patch(ord)
	return labelResult.URL, nil
}

// requestLabelWithRetry calls the label provider up to the policy's attempt
// limit. A response with a URL or an identifier stops the loop. Call errors,
// empty responses and payloads without a usable field are all retried; an
// unrecognized non-empty payload is kept as the soft-success outcome when no
// later attempt produces a usable one.
func (h ProcessQuickShipCommandHandler) requestLabelWithRetry(
	ctx context.Context,
	ord *order.Order,
) (shipment.LabelResult, error) {
	var lastErr error
	var ambiguous shipment.LabelResult

	for attempt := 1; attempt <= h.retry.MaxAttempts; attempt++ {
		if delay := h.retry.delay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return shipment.LabelResult{}, ctx.Err()
			case <-time.After(delay):
			}
		}

		metrics.LabelAttemptsTotal.Inc()
		labelResult, err := h.labels.RequestLabel(ctx, ord.ID(), ord.BookingRef())
		if err != nil {
			lastErr = err
			continue
		}
		if labelResult.HasURL() || labelResult.HasID() {
			return labelResult, nil
		}
		if labelResult.IsEmpty() {
			lastErr = fmt.Errorf("%w: label provider returned an empty response", ports.ErrProviderFailure)
			continue
		}
		ambiguous = labelResult
	}

	if !ambiguous.IsEmpty() {
		return ambiguous, nil
	}
	return shipment.LabelResult{}, lastErr
}

// persistLabelSuccess commits the issued label: status transition, audit
// entry and outbox event.
func (h ProcessQuickShipCommandHandler) persistLabelSuccess(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	labelResult shipment.LabelResult,
) error {
	if err := ord.CompleteLabelIssuance(); err != nil {
		return err
	}

	text := "Shipping label issued"
	switch {
	case labelResult.HasURL():
		text = fmt.Sprintf("Shipping label issued: %s", labelResult.URL)
	case labelResult.HasID():
		text = fmt.Sprintf("Shipping label issued, id %s", labelResult.LabelID)
	}

	entry, err := order.NewAuditEntry(ord.ID(), time.Now().UTC(), text)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}
	if err = h.stageEvent(ctx, uow, ord, "order.label_issued"); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// persistLabelFailure commits the failed label run. The booking reference
// survives; only the shipment status records the failure, so a later
// invocation retries the label phase without re-booking.
func (h ProcessQuickShipCommandHandler) persistLabelFailure(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	labelErr error,
) error {
	if err := ord.FailLabelIssuance(); err != nil {
		return err
	}

	entry, err := order.NewAuditEntry(ord.ID(), time.Now().UTC(),
		fmt.Sprintf("Label issuance failed: %s", errs.Truncate(labelErr.Error(), auditErrorLimit)))
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}
	if err = h.stageEvent(ctx, uow, ord, "order.label_failed"); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// stageEvent writes an order-changed event to the outbox inside the current
// transaction.
func (h ProcessQuickShipCommandHandler) stageEvent(
	ctx context.Context,
	uow UoW,
	ord *order.Order,
	eventType string,
) error {
	payload, err := json.Marshal(map[string]any{
		"order_id":        ord.ID().String(),
		"external_ref":    ord.ExternalRef(),
		"booking_ref":     ord.BookingRef(),
		"shipment_status": ord.ShipmentStatus().String(),
		"label_status":    ord.LabelStatus().String(),
	})
	if err != nil {
		return err
	}

	return uow.OutboxRepository().Add(ctx, ports.OutboxEvent{
		OrderID:   ord.ID().String(),
		EventType: eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
}

// fail records a terminal stage error: one metric increment, one error
// notification, and the error back to the caller.
func (h ProcessQuickShipCommandHandler) fail(ctx context.Context, stage string, err error) error {
	metrics.QuickShipErrorsTotal.WithLabelValues(stage).Inc()
	h.notifier.Notify(ctx, ports.SeverityError, errs.Truncate(err.Error(), auditErrorLimit))
	return err
}
