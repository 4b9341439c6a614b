package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/catalog"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

// Catalog is the slice of the catalog client the handlers need.
type Catalog interface {
	List(ctx context.Context, opts catalog.ListOptions) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
}

func NewProductHandler(c Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := catalog.ListOptions{
		Featured: r.URL.Query().Get("featured") == "true",
		Color:    r.URL.Query().Get("color"),
	}

	products, err := h.catalog.List(r.Context(), opts)
	if err != nil {
		// A stalled catalog degrades to an empty listing, never an error page.
		log.Printf("catalog list failed: %v", err)
		respondJSON(w, http.StatusOK, []domain.Product{})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("catalog get failed: %v", err)
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "catalog service unavailable")
		return
	}
	respondJSON(w, http.StatusOK, product)
}
