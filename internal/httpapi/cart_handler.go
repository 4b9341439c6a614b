package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/cart"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/catalog"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

type CartHandler struct {
	cart    *cart.Store
	catalog Catalog
}

func NewCartHandler(store *cart.Store, c Catalog) *CartHandler {
	return &CartHandler{cart: store, catalog: c}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type SetQuantityRequestDTO struct {
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

type CartResponseDTO struct {
	Items []domain.CartLine `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem resolves the product from the catalog so the cart stores a full
// snapshot, and rejects colors the product does not offer. The UI only sends
// valid variants; the checks here keep the store's contract intact for any
// other caller.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "catalog service unavailable")
		return
	}
	if !product.HasColor(req.Color) {
		respondError(w, http.StatusBadRequest, "invalid_color", "color is not offered for this product")
		return
	}

	h.cart.AddItem(r.Context(), *product, req.Color, req.Quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Color == "" {
		respondError(w, http.StatusBadRequest, "invalid_color", "color is required")
		return
	}

	h.cart.SetQuantity(r.Context(), chi.URLParam(r, "product_id"), req.Color, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	color := r.URL.Query().Get("color")
	if color == "" {
		respondError(w, http.StatusBadRequest, "invalid_color", "color query parameter is required")
		return
	}

	h.cart.RemoveItem(r.Context(), chi.URLParam(r, "product_id"), color)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	lines := h.cart.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponseDTO{
		Items: lines,
		Total: h.cart.Total(),
		Count: h.cart.Count(),
	}
}
