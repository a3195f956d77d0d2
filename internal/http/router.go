package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chrisapx/farm-to-table-fav/internal/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
	Manager  *auth.Manager
}

func NewRouter(h Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.Catalog.List)
			r.Get("/categories", h.Catalog.Categories)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{item_id}", h.Cart.RemoveItem)
		})

		r.Post("/checkout", h.Checkout.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.Admin.Login)
			r.Get("/session", h.Admin.Session)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(h.Manager))

				r.Post("/logout", h.Admin.Logout)

				r.Route("/items", func(r chi.Router) {
					r.Get("/", h.Admin.ListItems)
					r.Post("/", h.Admin.CreateItem)
					r.Put("/{item_id}", h.Admin.UpdateItem)
					r.Delete("/{item_id}", h.Admin.DeleteItem)
					r.Patch("/{item_id}/availability", h.Admin.SetAvailability)
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", h.Admin.ListOrders)
					r.Patch("/{order_id}/status", h.Admin.UpdateOrderStatus)
				})
			})
		})
	})

	return r
}
