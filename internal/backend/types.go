package backend

import (
	"time"

	"github.com/Amansahu83/clothstore-web/internal/session"
)

// Credentials for login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration payload
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// PasswordReset completes the forgot-password flow.
type PasswordReset struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Product as the backend catalog returns it
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

// OrderStatus values the backend accepts
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a status an admin may set.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// OrderItemInput is one line of a new order.
type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest creates an order from the current cart.
type OrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress string           `json:"shipping_address"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order as the backend returns it, both for a customer's own history and
// the administrative listing.
type Order struct {
	ID              int64       `json:"id"`
	UserName        string      `json:"user_name"`
	UserEmail       string      `json:"user_email"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shipping_address"`
}

// RevenueStats is the admin revenue dashboard payload.
type RevenueStats struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	TotalOrders    int     `json:"totalOrders"`
	PendingOrders  int     `json:"pendingOrders"`
}

// PaymentOrder is the provider-side order the payment widget consumes.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentVerification carries the provider's signature back to the backend,
// which owns verification.
type PaymentVerification struct {
	PaymentOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}
