// Package httpapi exposes the storefront REST surface the views consume.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/cart"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/checkout"
)

func NewRouter(store *cart.Store, flow *checkout.Flow, cat Catalog, requestTimeout time.Duration) http.Handler {
	cartHandler := NewCartHandler(store, cat)
	checkoutHandler := NewCheckoutHandler(flow)
	productHandler := NewProductHandler(cat)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.SetQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Submit)
			r.Get("/confirmation", checkoutHandler.Confirmation)
		})
	})

	return r
}
