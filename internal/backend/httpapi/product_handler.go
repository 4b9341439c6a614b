// Package httpapi exposes the catalog and order REST API consumed by the
// storefront.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/backend/repository"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

type ProductHandler struct {
	repo *repository.Repository
}

func NewProductHandler(repo *repository.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if product.Name == "" || product.Price < 0 || len(product.Colors) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name, a non-negative price and at least one color are required")
		return
	}

	if err := h.repo.CreateProduct(r.Context(), &product); err != nil {
		log.Printf("create product failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ProductFilter{
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Color:        r.URL.Query().Get("color"),
	}

	products, err := h.repo.ListProducts(r.Context(), filter)
	if err != nil {
		log.Printf("list products failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("get product failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Update applies a partial update: absent fields keep their stored values.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("get product failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	product.ID = chi.URLParam(r, "id") // the id is not updatable

	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		log.Printf("update product failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("delete product failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
