package ports

import (
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
)

// OrderListCache is the in-memory view of orders awaiting a label. The
// workflow patches it after every committed transition so list reads stay
// consistent with the store without re-querying it.
type OrderListCache interface {
	// Patch inserts or updates the order's cache entry. Orders whose label
	// tag is no longer pending drop out of the pending view.
	Patch(aggregate *order.Order)

	// Remove evicts the order from the cache.
	Remove(id kernel.UUID)

	// PendingLabel returns a snapshot of cached orders still awaiting a
	// label. The second return value is false until the cache was warmed.
	PendingLabel() ([]*order.Order, bool)

	// Warm seeds the cache from a store read.
	Warm(aggregates []*order.Order)
}
