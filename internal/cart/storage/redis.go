package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/domain"
)

// storageKey matches the key the original storefront persisted under.
const storageKey = "luxuryCart"

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

type RedisStorage struct {
	client *redis.Client
}

func (r *RedisStorage) Load(ctx context.Context) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, cartKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err2 := json.Unmarshal(data, &lines); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}

	return lines, nil
}

func (r *RedisStorage) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// No TTL: the cart is durable state, not a cache.
	if ret := r.client.Set(ctx, cartKey(), data, 0); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func cartKey() string {
	return fmt.Sprintf("cart:%s", storageKey)
}
