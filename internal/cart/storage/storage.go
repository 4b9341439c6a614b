package storage

import (
	"context"
	"errors"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

// Storage persists the full cart sequence under a single fixed key. The cart
// store is the only writer of that key.
type Storage interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
}

var ErrNotFound = errors.New("no stored cart")
