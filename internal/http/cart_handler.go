package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Amansahu83/clothstore-web/internal/cart"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cart *cart.Manager
}

func NewCartHandler(cartManager *cart.Manager) *CartHandler {
	return &CartHandler{cart: cartManager}
}

// CartView is what the UI renders: the line items plus the derived totals,
// computed on demand and never stored.
type CartView struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice float64         `json:"total_price"`
}

type AddItemRequestDTO struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	ImageURL  string  `json:"image_url"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view(r))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be positive")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	err := h.cart.Add(r.Context(), cart.LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.Price,
		Size:      req.Size,
		Color:     req.Color,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to persist cart")
		return
	}
	respondJSON(w, http.StatusCreated, h.view(r))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	err := h.cart.SetQuantity(r.Context(), productID, req.Quantity)
	if errors.Is(err, cart.ErrItemNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "item not in cart")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to persist cart")
		return
	}
	respondJSON(w, http.StatusOK, h.view(r))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}
	if err := h.cart.Remove(r.Context(), productID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to persist cart")
		return
	}
	respondJSON(w, http.StatusOK, h.view(r))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CartHandler) view(r *http.Request) CartView {
	items := h.cart.Items(r.Context())
	if items == nil {
		items = []cart.LineItem{}
	}
	return CartView{
		Items:      items,
		TotalItems: cart.TotalItems(items),
		TotalPrice: cart.TotalPrice(items),
	}
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
