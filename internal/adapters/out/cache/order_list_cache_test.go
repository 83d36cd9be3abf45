package cache_test

import (
	"testing"
	"time"

	"quickship/internal/adapters/out/cache"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, externalRef string, labelStatus order.LabelStatus, createdAt time.Time) *order.Order {
	t.Helper()

	recipient, err := order.NewRecipient(
		"Maria Souza", "", "", "", "", "", "", "", "01310100",
	)
	require.NoError(t, err)

	item, err := order.NewLineItem("prod-1", "", 1, 10)
	require.NoError(t, err)

	shipmentStatus := order.StatusLabelPending
	if labelStatus == order.LabelAvailable {
		shipmentStatus = order.StatusLabelDone
	}

	ord, err := order.RestoreOrder(
		kernel.NewUUID(), externalRef, recipient, []order.LineItem{item}, false,
		nil, "BKG-1", labelStatus, shipmentStatus, createdAt,
	)
	require.NoError(t, err)
	return ord
}

func TestInMemoryOrderListCache_ColdCacheReportsNotWarmed(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()

	snapshot, warmed := c.PendingLabel()

	assert.False(t, warmed)
	assert.Nil(t, snapshot)
}

func TestInMemoryOrderListCache_PatchBeforeWarmDoesNotMarkWarmed(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()
	c.Patch(buildOrder(t, "ORD-1", order.LabelPending, time.Now()))

	_, warmed := c.PendingLabel()

	assert.False(t, warmed)
}

func TestInMemoryOrderListCache_WarmKeepsOnlyPendingOrders(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()
	pending := buildOrder(t, "ORD-1", order.LabelPending, time.Now())
	done := buildOrder(t, "ORD-2", order.LabelAvailable, time.Now())

	c.Warm([]*order.Order{pending, done, nil})

	snapshot, warmed := c.PendingLabel()
	require.True(t, warmed)
	require.Len(t, snapshot, 1)
	assert.Equal(t, pending.ID(), snapshot[0].ID())
}

func TestInMemoryOrderListCache_SnapshotOrderedByIntakeTime(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()
	older := buildOrder(t, "ORD-OLD", order.LabelPending, time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC))
	newer := buildOrder(t, "ORD-NEW", order.LabelPending, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	c.Warm([]*order.Order{newer, older})

	snapshot, warmed := c.PendingLabel()
	require.True(t, warmed)
	require.Len(t, snapshot, 2)
	assert.Equal(t, older.ID(), snapshot[0].ID())
	assert.Equal(t, newer.ID(), snapshot[1].ID())
}

func TestInMemoryOrderListCache_PatchEvictsCompletedOrder(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()
	pending := buildOrder(t, "ORD-1", order.LabelPending, time.Now())
	c.Warm([]*order.Order{pending})

	require.NoError(t, pending.CompleteLabelIssuance())
	c.Patch(pending)

	snapshot, warmed := c.PendingLabel()
	require.True(t, warmed)
	assert.Empty(t, snapshot)
}

func TestInMemoryOrderListCache_PatchInsertsNewPendingOrder(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()
	c.Warm(nil)

	c.Patch(buildOrder(t, "ORD-1", order.LabelPending, time.Now()))

	snapshot, warmed := c.PendingLabel()
	require.True(t, warmed)
	require.Len(t, snapshot, 1)
}

func TestInMemoryOrderListCache_RemoveEvictsOrder(t *testing.T) {
	c := cache.NewInMemoryOrderListCache()
	pending := buildOrder(t, "ORD-1", order.LabelPending, time.Now())
	c.Warm([]*order.Order{pending})

	c.Remove(pending.ID())

	snapshot, warmed := c.PendingLabel()
	require.True(t, warmed)
	assert.Empty(t, snapshot)
}
