package http

import (
	"net/http"
	"time"

	"github.com/Amansahu83/clothstore-web/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig wires the handlers into the storefront's HTTP surface.
type RouterConfig struct {
	Auth           *AuthHandler
	Cart           *CartHandler
	Products       *ProductsHandler
	Orders         *OrdersHandler
	Payments       *PaymentsHandler
	Notifications  *NotificationsHandler
	Sessions       *session.Manager
	RequestTimeout time.Duration
}

// NewRouter assembles the full route tree. Catalog reads are public; cart
// and session routes are local state; order history needs a session; the
// admin console routes are gated on the session role, with the backend
// still enforcing authorization on every passthrough.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.Auth.Login)
			r.Post("/register", cfg.Auth.Register)
			r.Post("/logout", cfg.Auth.Logout)
			r.Post("/forgot-password", cfg.Auth.ForgotPassword)
			r.Post("/reset-password", cfg.Auth.ResetPassword)
			r.Get("/me", cfg.Auth.Me)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{product_id}", cfg.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
			r.Delete("/", cfg.Cart.ClearCart)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Products.List)
			r.Get("/{id}", cfg.Products.Get)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(cfg.Sessions))
				r.Post("/", cfg.Products.Create)
				r.Put("/{id}", cfg.Products.Update)
				r.Delete("/{id}", cfg.Products.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(cfg.Sessions))
				r.Post("/", cfg.Orders.Create)
				r.Get("/", cfg.Orders.List)
				r.Put("/{id}/cancel", cfg.Orders.Cancel)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(cfg.Sessions))
				r.Get("/admin/all", cfg.Orders.AdminList)
				r.Get("/admin/revenue", cfg.Orders.Revenue)
				r.Put("/{id}/status", cfg.Orders.UpdateStatus)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(RequireAuth(cfg.Sessions))
			r.Post("/create-order", cfg.Payments.CreateOrder)
			r.Post("/verify", cfg.Payments.Verify)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(RequireAdmin(cfg.Sessions))
			r.Get("/", cfg.Notifications.Get)
			r.Post("/check", cfg.Notifications.Check)
			r.Delete("/", cfg.Notifications.Clear)
		})
	})

	return r
}
