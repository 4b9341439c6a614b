package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/backend/repository"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/events"
)

type OrderHandler struct {
	repo      *repository.Repository
	publisher *events.Publisher // nil when events are disabled
}

func NewOrderHandler(repo *repository.Repository, publisher *events.Publisher) *OrderHandler {
	return &OrderHandler{repo: repo, publisher: publisher}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_order", "order must contain at least one item")
		return
	}
	if req.CustomerInfo.Email == "" || req.CustomerInfo.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_customer_info", "customer name and email are required")
		return
	}

	order := &domain.Order{
		Status:        domain.OrderStatusPending,
		Items:         req.Items,
		Total:         req.Total,
		CustomerInfo:  req.CustomerInfo,
		PaymentMethod: req.PaymentMethod,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = domain.PaymentMethodCOD
	}

	if err := h.repo.CreateOrder(r.Context(), order); err != nil {
		log.Printf("create order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create order")
		return
	}

	h.publisher.OrderCreated(r.Context(), order)

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.ListOrders(r.Context(), repository.OrderFilter{
		Email: r.URL.Query().Get("email"),
	})
	if err != nil {
		log.Printf("list orders failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.repo.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("get order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type StatusUpdateDTO struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	id := chi.URLParam(r, "id")
	err := h.repo.UpdateOrderStatus(r.Context(), id, req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("update order status failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update order status")
		return
	}

	order, err := h.repo.GetOrder(r.Context(), id)
	if err != nil {
		log.Printf("reload order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load updated order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}
