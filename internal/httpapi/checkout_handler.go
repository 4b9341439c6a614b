package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/checkout"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

type CheckoutHandler struct {
	flow *checkout.Flow
}

func NewCheckoutHandler(flow *checkout.Flow) *CheckoutHandler {
	return &CheckoutHandler{flow: flow}
}

type CheckoutRequestDTO struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	created, err := h.flow.Submit(r.Context(), req.CustomerInfo)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, "invalid_customer_info", verr.Error())
		case errors.Is(err, checkout.ErrCartEmpty):
			respondError(w, http.StatusConflict, "cart_empty", "your cart is empty")
		case errors.Is(err, checkout.ErrSubmitInFlight):
			respondError(w, http.StatusConflict, "submit_in_flight", "an order submission is already in progress")
		default:
			// cart is untouched; the caller can retry as-is
			respondError(w, http.StatusBadGateway, "order_failed", "failed to place order, please try again")
		}
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	order, ok := h.flow.LastOrder()
	if !ok {
		respondError(w, http.StatusNotFound, "no_order", "no order found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}
