package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Amansahu83/clothstore-web/internal/backend"
)

// PaymentsAPI is the slice of the backend client the payment routes need.
type PaymentsAPI interface {
	CreatePaymentOrder(ctx context.Context, amount float64) (*backend.PaymentOrder, error)
	VerifyPayment(ctx context.Context, v backend.PaymentVerification) error
}

type PaymentsHandler struct {
	api PaymentsAPI
}

func NewPaymentsHandler(api PaymentsAPI) *PaymentsHandler {
	return &PaymentsHandler{api: api}
}

type CreatePaymentOrderRequestDTO struct {
	Amount float64 `json:"amount"`
}

// CreateOrder asks the backend for a provider-side payment order; the
// payment widget consumes the result.
func (h *PaymentsHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_amount", "amount must be positive")
		return
	}

	order, err := h.api.CreatePaymentOrder(r.Context(), req.Amount)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// Verify forwards the provider's signature to the backend, which owns
// verification.
func (h *PaymentsHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var v backend.PaymentVerification
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if v.PaymentOrderID == "" || v.PaymentID == "" || v.Signature == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "order id, payment id and signature are required")
		return
	}

	if err := h.api.VerifyPayment(r.Context(), v); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
