// Package cache holds the in-memory pending-label order list. The workflow
// patches it after every committed transition; list queries read it instead
// of hitting the store once it was warmed.
package cache

import (
	"sort"
	"sync"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
	"quickship/internal/pkg/metrics"
)

// InMemoryOrderListCache implements ports.OrderListCache with a mutex-guarded
// map. Safe for concurrent use.
type InMemoryOrderListCache struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
	warmed bool
}

// NewInMemoryOrderListCache creates an empty, cold cache.
func NewInMemoryOrderListCache() *InMemoryOrderListCache {
	return &InMemoryOrderListCache{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// Patch inserts or updates the order's entry. Orders whose label tag is no
// longer pending are evicted from the pending view.
func (c *InMemoryOrderListCache) Patch(aggregate *order.Order) {
	if aggregate == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if aggregate.LabelStatus() == order.LabelPending {
		c.orders[aggregate.ID()] = aggregate
	} else {
		delete(c.orders, aggregate.ID())
	}
	c.publishGauge()
}

// Remove evicts the order from the cache.
func (c *InMemoryOrderListCache) Remove(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.orders, id)
	c.publishGauge()
}

// PendingLabel returns a snapshot of cached orders awaiting a label, oldest
// intake first. Returns false until the cache was warmed.
func (c *InMemoryOrderListCache) PendingLabel() ([]*order.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.warmed {
		return nil, false
	}

	snapshot := make([]*order.Order, 0, len(c.orders))
	for _, ord := range c.orders {
		snapshot = append(snapshot, ord)
	}

	sort.Slice(snapshot, func(i, j int) bool {
		if !snapshot[i].CreatedAt().Equal(snapshot[j].CreatedAt()) {
			return snapshot[i].CreatedAt().Before(snapshot[j].CreatedAt())
		}
		return snapshot[i].ID().String() < snapshot[j].ID().String()
	})

	return snapshot, true
}

// Warm seeds the cache from a store read and marks it usable.
func (c *InMemoryOrderListCache) Warm(aggregates []*order.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.orders = make(map[kernel.UUID]*order.Order, len(aggregates))
	for _, ord := range aggregates {
		if ord == nil || ord.LabelStatus() != order.LabelPending {
			continue
		}
		c.orders[ord.ID()] = ord
	}
	c.warmed = true
	c.publishGauge()
}

// publishGauge must be called with the lock held.
func (c *InMemoryOrderListCache) publishGauge() {
	metrics.PendingLabelOrders.Set(float64(len(c.orders)))
}
