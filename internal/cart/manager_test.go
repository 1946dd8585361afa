package cart

import (
	"context"
	"testing"

	"github.com/Amansahu83/clothstore-web/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	return NewManager(store), store
}

func TestItems_EmptyAndCorruptStateReadAsEmptyCart(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()

	assert.Empty(t, m.Items(ctx))
	assert.Equal(t, 0, m.TotalItems(ctx))
	assert.Equal(t, 0.0, m.TotalPrice(ctx))

	require.NoError(t, store.Set(ctx, kvstore.KeyCart, `{not an array`))
	assert.Empty(t, m.Items(ctx))
}

func TestAdd_DistinctProductsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 3, Name: "Hoodie", UnitPrice: 45}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, Name: "Tee", UnitPrice: 20}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 2, Name: "Cap", UnitPrice: 15}))

	items := m.Items(ctx)
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ProductID)
	assert.Equal(t, int64(1), items[1].ProductID)
	assert.Equal(t, int64(2), items[2].ProductID)
	for _, li := range items {
		assert.Equal(t, 1, li.Quantity)
	}
}

func TestAdd_SameProductIncrementsInsteadOfDuplicating(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	for i := 0; i < 4; i++ {
		require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, Name: "Tee", UnitPrice: 20}))
	}
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 2, Name: "Cap", UnitPrice: 15}))

	items := m.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 5, m.TotalItems(ctx))
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, m.SetQuantity(ctx, 1, 7))

	items := m.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)

	assert.ErrorIs(t, m.SetQuantity(ctx, 99, 2), ErrItemNotFound)
	assert.ErrorIs(t, m.SetQuantity(ctx, 1, -1), ErrInvalidQuantity)
}

func TestSetQuantityZero_EquivalentToRemove(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 2, UnitPrice: 15}))

	require.NoError(t, m.SetQuantity(ctx, 1, 0))

	items := m.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	// Same for a product that is not in the cart: no error, no change.
	require.NoError(t, m.SetQuantity(ctx, 1, 0))
	assert.Len(t, m.Items(ctx), 1)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 2, UnitPrice: 15}))

	require.NoError(t, m.Remove(ctx, 1))
	items := m.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	// Removing an absent product is a no-op.
	require.NoError(t, m.Remove(ctx, 42))
	assert.Len(t, m.Items(ctx), 1)
}

func TestClear_RemovesCartKey(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, m.Clear(ctx))

	assert.Empty(t, m.Items(ctx))
	_, err := store.Get(ctx, kvstore.KeyCart)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 2, UnitPrice: 15.5}))
	require.NoError(t, m.SetQuantity(ctx, 2, 3))

	assert.Equal(t, 5, m.TotalItems(ctx))
	assert.InDelta(t, 2*20+3*15.5, m.TotalPrice(ctx), 1e-9)
}

// Add the same product twice, then decrement it away: the scenario from the
// original storefront's cart page.
func TestScenario_AddTwiceThenZeroOut(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, Name: "Tee", UnitPrice: 20}))
	require.NoError(t, m.Add(ctx, LineItem{ProductID: 1, Name: "Tee", UnitPrice: 20}))

	items := m.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 40.0, m.TotalPrice(ctx), 1e-9)

	require.NoError(t, m.SetQuantity(ctx, 1, 0))
	assert.Empty(t, m.Items(ctx))
	assert.Equal(t, 0.0, m.TotalPrice(ctx))
}

func TestCart_SharedStoreIsTheSourceOfTruth(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	first := NewManager(store)
	require.NoError(t, first.Add(ctx, LineItem{ProductID: 1, UnitPrice: 9.99}))

	second := NewManager(store)
	items := second.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
}
