// Package redis stores cart sessions in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

var _ port.CartStorage = (*CartsRepository)(nil)

const (
	DefaultKeyPrefix = "storefront:cart:"
	DefaultTTL       = 30 * 24 * time.Hour
)

type (
	cartValue struct {
		Items []cartItemValue `json:"items"`
	}

	cartItemValue struct {
		ID    string  `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
		Image string  `json:"image,omitempty"`
		Qty   int     `json:"qty"`
	}
)

// CartsRepository keeps one JSON value per session. Every write refreshes
// the TTL.
type CartsRepository struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

type CartsRepositoryOpt func(*CartsRepository)

func KeyPrefixOpt(prefix string) CartsRepositoryOpt {
	return func(r *CartsRepository) { r.prefix = prefix }
}

func TTLOpt(ttl time.Duration) CartsRepositoryOpt {
	return func(r *CartsRepository) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func NewCartsRepository(rdb goredis.UniversalClient, opts ...CartsRepositoryOpt) CartsRepository {
	r := CartsRepository{rdb: rdb, prefix: DefaultKeyPrefix, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewClient connects to addr and waits until Redis answers a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	const op = "redis.NewClient"
	log := slog.With("op", op)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	err := retry.Do(ctx, retry.RetryConfig{MaxAttempts: 5}, func() error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}
	log.Info("redis is available", "addr", addr)
	return rdb, nil
}

func (r CartsRepository) LoadCart(
	ctx context.Context, sessionID string,
) (domain.Cart, error) {
	const op = "CartsRepository.LoadCart"

	b, err := r.rdb.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Cart{}, nil
		}
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	var v cartValue
	if err := json.Unmarshal(b, &v); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	c := domain.Cart{Items: make([]domain.CartItem, len(v.Items))}
	for i, it := range v.Items {
		c.Items[i] = domain.CartItem(it)
	}
	return c, nil
}

// SaveCart deletes the key for an empty cart.
func (r CartsRepository) SaveCart(
	ctx context.Context, sessionID string, c domain.Cart,
) error {
	const op = "CartsRepository.SaveCart"

	if len(c.Items) == 0 {
		return r.DeleteCart(ctx, sessionID)
	}

	v := cartValue{Items: make([]cartItemValue, len(c.Items))}
	for i, it := range c.Items {
		v.Items[i] = cartItemValue(it)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.rdb.Set(ctx, r.key(sessionID), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartsRepository) DeleteCart(ctx context.Context, sessionID string) error {
	const op = "CartsRepository.DeleteCart"

	if err := r.rdb.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartsRepository) key(sessionID string) string {
	return r.prefix + sessionID
}
