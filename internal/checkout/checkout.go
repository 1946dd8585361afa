package checkout

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/Amansahu83/clothstore-web/internal/cart"
)

// Validation errors, checked before any network call
var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrEmptyAddress = errors.New("shipping address is required")
)

// OrderPlacer is the slice of the backend client checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error)
}

// Service turns the current cart into an order. A failed placement leaves
// the cart exactly as it was; the cart is cleared only after the backend
// accepts the order.
type Service struct {
	cart *cart.Manager
	api  OrderPlacer
}

func NewService(cartManager *cart.Manager, api OrderPlacer) *Service {
	return &Service{cart: cartManager, api: api}
}

// PlaceOrder validates locally, submits the cart as an order, and clears
// the cart on success.
func (s *Service) PlaceOrder(ctx context.Context, shippingAddress string) (*backend.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrEmptyAddress
	}
	items := s.cart.Items(ctx)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req := backend.OrderRequest{ShippingAddress: shippingAddress}
	for _, li := range items {
		req.Items = append(req.Items, backend.OrderItemInput{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
		})
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if errClear := s.cart.Clear(ctx); errClear != nil {
		// The order is already placed; a stale local cart is recoverable.
		log.Printf("checkout: clearing cart after order %d failed: %v", order.ID, errClear)
	}
	return order, nil
}
