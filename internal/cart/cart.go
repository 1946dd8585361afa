package cart

// LineItem is one product-quantity pairing in the cart. JSON field names
// match the original storefront's persisted layout so an existing cart
// stays readable.
type LineItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// TotalItems sums quantities across line items.
func TotalItems(items []LineItem) int {
	total := 0
	for _, li := range items {
		total += li.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity across line items. The empty
// cart totals zero.
func TotalPrice(items []LineItem) float64 {
	total := 0.0
	for _, li := range items {
		total += li.Subtotal()
	}
	return total
}
