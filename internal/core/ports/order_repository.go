package ports

import (
	"context"
	"errors"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
)

// ErrOrderAlreadyClaimed is returned by Claim when another session holds the
// order. The claim lives in the order store so it holds across processes,
// not only within one running instance.
var ErrOrderAlreadyClaimed = errors.New("order is already claimed for processing")

// OrderRepository defines the persistence contract for order aggregates.
// The quick-ship workflow reads orders, claims them for exclusive processing,
// and writes back booking references, stored quote snapshots, and label state.
type OrderRepository interface {
	// Get retrieves an order aggregate by its unique identifier, including
	// the recipient snapshot, line items, and any stored freight selection.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Claim atomically marks the order as being processed. Returns
	// ErrOrderAlreadyClaimed when another run holds the claim. The claim is
	// a conditional update in the store, so it also guards against
	// concurrent runs from other sessions.
	Claim(ctx context.Context, id kernel.UUID) error

	// Release clears the processing claim. Safe to call when the claim is
	// not held; used from deferred cleanup regardless of run outcome.
	Release(ctx context.Context, id kernel.UUID) error

	// GetAllPendingLabel retrieves orders whose label tag is still pending,
	// feeding the "label pending" list view.
	GetAllPendingLabel(ctx context.Context) ([]*order.Order, error)
}
