package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/Amansahu83/clothstore-web/internal/checkout"
	"github.com/go-chi/chi/v5"
)

// OrdersAPI is the slice of the backend client the order routes need.
type OrdersAPI interface {
	Orders(ctx context.Context) ([]backend.Order, error)
	AdminOrders(ctx context.Context) ([]backend.Order, error)
	Revenue(ctx context.Context) (*backend.RevenueStats, error)
	UpdateOrderStatus(ctx context.Context, id int64, status backend.OrderStatus) error
	CancelOrder(ctx context.Context, id int64) error
}

type OrdersHandler struct {
	api      OrdersAPI
	checkout *checkout.Service
}

func NewOrdersHandler(api OrdersAPI, checkoutService *checkout.Service) *OrdersHandler {
	return &OrdersHandler{api: api, checkout: checkoutService}
}

type CreateOrderRequestDTO struct {
	ShippingAddress string `json:"shipping_address"`
}

type UpdateStatusRequestDTO struct {
	Status backend.OrderStatus `json:"status"`
}

// Create places an order from the current cart. Validation failures are
// reported before anything reaches the backend, and a backend failure
// leaves the cart untouched.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req.ShippingAddress)
	switch {
	case errors.Is(err, checkout.ErrEmptyAddress):
		respondError(w, http.StatusBadRequest, "invalid_request", "shipping address is required")
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	case err != nil:
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.api.Orders(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	if err := h.api.CancelOrder(r.Context(), id); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *OrdersHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.api.AdminOrders(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	stats, err := h.api.Revenue(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !backend.ValidStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be pending, processing, shipped or delivered")
		return
	}

	if err := h.api.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]backend.OrderStatus{"status": req.Status})
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a positive integer")
		return 0, false
	}
	return id, true
}
