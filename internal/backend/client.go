package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request goes out unauthenticated and the backend decides
// whether to reject it.
type TokenSource interface {
	Token(ctx context.Context) string
}

// APIError is a non-2xx response from the backend. The message is whatever
// the backend put in its error body; callers display it as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// Client talks to the external store backend over REST. All business logic
// (auth enforcement, payment verification, inventory, revenue aggregation)
// lives on the other side of this client.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	transport := otelhttp.NewTransport(&authTransport{
		tokens: tokens,
		base:   http.DefaultTransport,
	})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Transport: transport, Timeout: timeout},
	}
}

// authTransport injects the bearer token when one is present.
type authTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Token(req.Context()); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// --- auth ---

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, reset PasswordReset) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", reset, nil)
}

// --- products ---

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductForm carries the admin product fields plus an optional image
// upload; the backend stores the image and serves it back by URL.
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Size        string
	Color       string
	Stock       int
	Image       io.Reader // nil when unchanged
	ImageName   string
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*Product, error) {
	var out Product
	if err := c.doMultipart(ctx, http.MethodPost, "/products", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, form ProductForm) (*Product, error) {
	var out Product
	if err := c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// --- orders ---

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists the authenticated user's own orders.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminOrders lists every order in the store. The notification poller and
// the admin console both read from here.
func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders/admin/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Revenue(ctx context.Context) (*RevenueStats, error) {
	var out RevenueStats
	if err := c.do(ctx, http.MethodGet, "/orders/admin/revenue", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) error {
	payload := map[string]OrderStatus{"status": status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), payload, nil)
}

func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/cancel", id), nil, nil)
}

// --- payments ---

func (c *Client) CreatePaymentOrder(ctx context.Context, amount float64) (*PaymentOrder, error) {
	var out PaymentOrder
	payload := map[string]float64{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/payments/create-order", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyPayment(ctx context.Context, v PaymentVerification) error {
	return c.do(ctx, http.MethodPost, "/payments/verify", v, nil)
}

// --- plumbing ---

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, form ProductForm, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        form.Name,
		"description": form.Description,
		"price":       strconv.FormatFloat(form.Price, 'f', 2, 64),
		"size":        form.Size,
		"color":       form.Color,
		"stock":       strconv.Itoa(form.Stock),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if form.Image != nil {
		part, err := w.CreateFormFile("image", form.ImageName)
		if err != nil {
			return fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
