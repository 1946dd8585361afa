package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Amansahu83/clothstore-web/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPaymentsAPI struct {
	amount       float64
	order        *backend.PaymentOrder
	verification *backend.PaymentVerification
	err          error
}

func (m *mockPaymentsAPI) CreatePaymentOrder(_ context.Context, amount float64) (*backend.PaymentOrder, error) {
	m.amount = amount
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockPaymentsAPI) VerifyPayment(_ context.Context, v backend.PaymentVerification) error {
	m.verification = &v
	return m.err
}

func TestCreatePaymentOrder(t *testing.T) {
	api := &mockPaymentsAPI{order: &backend.PaymentOrder{ID: "order_abc", Amount: 9950, Currency: "INR"}}
	h := NewPaymentsHandler(api)

	rec := httptest.NewRecorder()
	h.CreateOrder(rec, httptest.NewRequest(http.MethodPost, "/payments/create-order", strings.NewReader(`{"amount":99.5}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 99.5, api.amount)

	var order backend.PaymentOrder
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(9950), order.Amount)
}

func TestCreatePaymentOrder_Validation(t *testing.T) {
	api := &mockPaymentsAPI{}
	h := NewPaymentsHandler(api)

	for name, body := range map[string]string{
		"malformed json": `{nope`,
		"zero amount":    `{"amount":0}`,
		"negative":       `{"amount":-5}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.CreateOrder(rec, httptest.NewRequest(http.MethodPost, "/payments/create-order", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, api.amount, "validation failures must not reach the backend")
		})
	}
}

func TestVerifyPayment(t *testing.T) {
	api := &mockPaymentsAPI{}
	h := NewPaymentsHandler(api)

	body := `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}`
	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, api.verification)
	assert.Equal(t, "order_abc", api.verification.PaymentOrderID)
	assert.Equal(t, "pay_1", api.verification.PaymentID)
	assert.Equal(t, "sig", api.verification.Signature)
	assert.Contains(t, rec.Body.String(), `"status":"verified"`)
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	api := &mockPaymentsAPI{}
	h := NewPaymentsHandler(api)

	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(`{"razorpay_order_id":"order_abc"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, api.verification)
}

func TestVerifyPayment_BackendErrorRelayed(t *testing.T) {
	api := &mockPaymentsAPI{err: &backend.APIError{Status: http.StatusBadRequest, Message: "signature mismatch"}}
	h := NewPaymentsHandler(api)

	body := `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_1","razorpay_signature":"bad"}`
	rec := httptest.NewRecorder()
	h.Verify(rec, httptest.NewRequest(http.MethodPost, "/payments/verify", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "signature mismatch")
}
