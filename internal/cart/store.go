package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/cart/storage"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

// Store owns the cart: an ordered sequence of CartLines with no two lines
// sharing the same (product id, color) identity. Every mutation re-persists
// the full sequence through the storage port and notifies subscribers.
// All operations are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	storage storage.Storage
	subs    []chan struct{}
}

// NewStore loads the persisted cart. A missing or unparseable stored value
// degrades to an empty cart rather than an error.
func NewStore(ctx context.Context, st storage.Storage) *Store {
	s := &Store{storage: st}

	lines, err := st.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("cart load failed, starting empty: %v", err)
	}
	s.lines = lines
	return s
}

// AddItem merges quantity into the line identified by (product.ID, color), or
// appends a new line at the end. On merge the originally stored product
// snapshot is kept (keep-first), only the quantity changes. The caller is
// expected to pass a color from product.Colors and a quantity >= 1.
func (s *Store) AddItem(ctx context.Context, product domain.Product, color string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Is(product.ID, color) {
			s.lines[i].Quantity += quantity
			s.persist(ctx)
			s.notify()
			return
		}
	}

	s.lines = append(s.lines, domain.CartLine{Product: product, Color: color, Quantity: quantity})
	s.persist(ctx)
	s.notify()
}

// RemoveItem removes the line with the given identity. Removing an absent
// line is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID, color)
}

// SetQuantity replaces the quantity of the matching line. A quantity <= 0
// removes the line instead; a set on a non-existent line has no effect.
func (s *Store) SetQuantity(ctx context.Context, productID, color string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID, color)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Is(productID, color) {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			s.notify()
			return
		}
	}
}

// Clear empties the cart and persists the empty sequence.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
	s.notify()
}

// Lines returns a snapshot copy of the cart in first-add order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the exact sum of price x quantity over all lines. Rounding is left
// to presentation.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for i := range s.lines {
		total += s.lines[i].Subtotal()
	}
	return total
}

// Count is the total unit count across all lines, not the number of lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for i := range s.lines {
		count += s.lines[i].Quantity
	}
	return count
}

// Subscribe returns a channel that receives a signal after every mutation.
// Slow subscribers miss signals instead of blocking mutations.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) removeLocked(ctx context.Context, productID, color string) {
	for i := range s.lines {
		if s.lines[i].Is(productID, color) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			s.notify()
			return
		}
	}
}

// persist writes the full sequence back to storage. The cart stays usable on
// failure; the error is only logged.
func (s *Store) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.lines); err != nil {
		log.Printf("cart persist failed: %v", err)
	}
}

func (s *Store) notify() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
