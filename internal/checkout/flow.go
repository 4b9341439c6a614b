// Package checkout drives order submission: it validates the cart and the
// customer info, snapshots the order payload, submits it, and clears the cart
// exactly once after the order service confirms creation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/cart"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

var (
	ErrCartEmpty      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// ValidationError names the customer-info fields that are missing. Only
// presence is checked; format validation is the order service's concern.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing customer info fields: %v", e.Missing)
}

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// OrderCreator is the slice of the order service the flow needs.
type OrderCreator interface {
	Create(ctx context.Context, req *domain.OrderRequest) (*domain.Order, error)
}

type Flow struct {
	mu        sync.Mutex
	state     State
	cart      *cart.Store
	orders    OrderCreator
	lastOrder *domain.Order
}

func NewFlow(cartStore *cart.Store, orders OrderCreator) *Flow {
	return &Flow{
		state:  StateIdle,
		cart:   cartStore,
		orders: orders,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastOrder returns the most recently confirmed order, for the confirmation
// view. ok is false when no order has been confirmed yet.
func (f *Flow) LastOrder() (order *domain.Order, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOrder, f.lastOrder != nil
}

// Submit builds an OrderRequest from the current cart contents and submits
// it. The payload is snapshotted before the network call, so cart mutations
// made while the request is in flight cannot alter it. On success the live
// cart is cleared (which may drop lines added mid-flight; that mirrors the
// original storefront behavior) and the created order is retained for the
// confirmation view. On failure the cart is left untouched and the flow is
// immediately retryable.
func (f *Flow) Submit(ctx context.Context, info domain.CustomerInfo) (*domain.Order, error) {
	if err := validateCustomerInfo(info); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	lines := f.cart.Lines()
	if len(lines) == 0 {
		f.mu.Unlock()
		return nil, ErrCartEmpty
	}

	req := buildOrderRequest(lines, info)
	f.state = StateSubmitting
	f.mu.Unlock()

	created, err := f.orders.Create(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		log.Printf("order submission failed: %v", err)
		f.state = StateFailed
		return nil, fmt.Errorf("create order: %w", err)
	}

	f.cart.Clear(ctx)
	f.lastOrder = created
	f.state = StateSucceeded
	return created, nil
}

func buildOrderRequest(lines []domain.CartLine, info domain.CustomerInfo) *domain.OrderRequest {
	items := make([]domain.OrderItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Price:       l.Product.Price,
			Color:       l.Color,
		})
		total += l.Subtotal()
	}

	return &domain.OrderRequest{
		Items:         items,
		Total:         total,
		CustomerInfo:  info,
		PaymentMethod: domain.PaymentMethodCOD,
	}
}

func validateCustomerInfo(info domain.CustomerInfo) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", info.Name},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"postal_code", info.PostalCode},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
