package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/Amansahu83/clothstore-web/internal/cart"
	"github.com/Amansahu83/clothstore-web/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPlacer struct {
	req   *backend.OrderRequest // captures the request
	order *backend.Order
	err   error
}

func (m *mockPlacer) CreateOrder(_ context.Context, req backend.OrderRequest) (*backend.Order, error) {
	m.req = &req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func newTestService(placer *mockPlacer) (*Service, *cart.Manager) {
	cartManager := cart.NewManager(kvstore.NewMemoryStore())
	return NewService(cartManager, placer), cartManager
}

func TestPlaceOrder_EmptyAddressBlockedBeforeNetwork(t *testing.T) {
	ctx := context.Background()
	placer := &mockPlacer{}
	svc, cartManager := newTestService(placer)
	require.NoError(t, cartManager.Add(ctx, cart.LineItem{ProductID: 1, UnitPrice: 20}))

	_, err := svc.PlaceOrder(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyAddress)
	assert.Nil(t, placer.req, "validation failures must not reach the backend")
	assert.Len(t, cartManager.Items(ctx), 1)
}

func TestPlaceOrder_EmptyCartBlockedBeforeNetwork(t *testing.T) {
	ctx := context.Background()
	placer := &mockPlacer{}
	svc, _ := newTestService(placer)

	_, err := svc.PlaceOrder(ctx, "42 Some Street")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, placer.req)
}

func TestPlaceOrder_SuccessClearsCart(t *testing.T) {
	ctx := context.Background()
	placer := &mockPlacer{order: &backend.Order{ID: 9, TotalAmount: 55}}
	svc, cartManager := newTestService(placer)

	require.NoError(t, cartManager.Add(ctx, cart.LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, cartManager.Add(ctx, cart.LineItem{ProductID: 1, UnitPrice: 20}))
	require.NoError(t, cartManager.Add(ctx, cart.LineItem{ProductID: 2, UnitPrice: 15}))

	order, err := svc.PlaceOrder(ctx, "42 Some Street")
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)

	require.NotNil(t, placer.req)
	assert.Equal(t, "42 Some Street", placer.req.ShippingAddress)
	require.Len(t, placer.req.Items, 2)
	assert.Equal(t, backend.OrderItemInput{ProductID: 1, Quantity: 2}, placer.req.Items[0])
	assert.Equal(t, backend.OrderItemInput{ProductID: 2, Quantity: 1}, placer.req.Items[1])

	assert.Empty(t, cartManager.Items(ctx), "cart clears after a successful order")
}

func TestPlaceOrder_BackendFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	placer := &mockPlacer{err: errors.New("payment declined")}
	svc, cartManager := newTestService(placer)

	require.NoError(t, cartManager.Add(ctx, cart.LineItem{ProductID: 1, UnitPrice: 20}))

	_, err := svc.PlaceOrder(ctx, "42 Some Street")
	require.Error(t, err)
	assert.Len(t, cartManager.Items(ctx), 1, "no partial mutation on failure")
}
