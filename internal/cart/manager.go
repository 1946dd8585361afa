package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Amansahu83/clothstore-web/internal/kvstore"
)

// Common errors returned by the manager
var (
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

// Manager keeps the cart line items in the key-value store under one key.
// At most one line item exists per product; decrementing a quantity to
// zero removes the line.
type Manager struct {
	store kvstore.Store
}

func NewManager(store kvstore.Store) *Manager {
	return &Manager{store: store}
}

// Items returns the current cart. A missing or undecodable stored value
// reads as the empty cart; this never fails.
func (m *Manager) Items(ctx context.Context) []LineItem {
	raw, err := m.store.Get(ctx, kvstore.KeyCart)
	if err != nil {
		return nil
	}
	var items []LineItem
	if errUnmarshal := json.Unmarshal([]byte(raw), &items); errUnmarshal != nil {
		return nil
	}
	return items
}

// Add puts one unit of the product in the cart: an existing line item for
// the same product gains quantity 1, otherwise a new line item with
// quantity 1 is appended at the end.
func (m *Manager) Add(ctx context.Context, item LineItem) error {
	items := m.Items(ctx)
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity++
			return m.persist(ctx, items)
		}
	}
	item.Quantity = 1
	return m.persist(ctx, append(items, item))
}

// SetQuantity sets the line item's quantity to n. n == 0 removes the line
// item, exactly as Remove would.
func (m *Manager) SetQuantity(ctx context.Context, productID int64, n int) error {
	if n < 0 {
		return ErrInvalidQuantity
	}
	if n == 0 {
		return m.Remove(ctx, productID)
	}
	items := m.Items(ctx)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = n
			return m.persist(ctx, items)
		}
	}
	return ErrItemNotFound
}

// Remove filters the matching line item out and persists the remainder.
// Removing an absent product is a no-op.
func (m *Manager) Remove(ctx context.Context, productID int64) error {
	items := m.Items(ctx)
	kept := items[:0]
	for _, li := range items {
		if li.ProductID != productID {
			kept = append(kept, li)
		}
	}
	return m.persist(ctx, kept)
}

// Clear removes the cart key entirely.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Remove(ctx, kvstore.KeyCart)
}

// TotalItems is the sum of quantities in the current cart.
func (m *Manager) TotalItems(ctx context.Context) int {
	return TotalItems(m.Items(ctx))
}

// TotalPrice is the sum of unit price times quantity in the current cart.
func (m *Manager) TotalPrice(ctx context.Context) float64 {
	return TotalPrice(m.Items(ctx))
}

func (m *Manager) persist(ctx context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if errSet := m.store.Set(ctx, kvstore.KeyCart, string(raw)); errSet != nil {
		return fmt.Errorf("store cart: %w", errSet)
	}
	return nil
}
