package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.ProductsStorage = (*CachedProducts)(nil)
	_ port.ProductsBulk    = (*CachedProducts)(nil)
)

// CachedProducts serves reads from memory and writes through to the
// source of truth before updating memory.
type CachedProducts struct {
	source port.ProductsStorage
	cache  *MemoryProducts
}

func NewCachedProducts(source port.ProductsStorage, cache *MemoryProducts) CachedProducts {
	return CachedProducts{source, cache}
}

// Load fills the cache from the source.
func (c CachedProducts) Load(ctx context.Context) error {
	const op = "CachedProducts.Load"
	log := slog.With("op", op)

	ps, err := c.source.List(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.cache.Replace(ps)
	log.Info("catalog cache loaded", "products", len(ps))
	return nil
}

func (c CachedProducts) Get(ctx context.Context, slug string) (domain.Product, error) {
	return c.cache.Get(ctx, slug)
}

func (c CachedProducts) List(ctx context.Context) ([]domain.Product, error) {
	return c.cache.List(ctx)
}

func (c CachedProducts) Upsert(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CachedProducts.Upsert"

	stored, err := c.source.Upsert(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return c.cache.Upsert(ctx, stored)
}

// UpsertMany needs a source that stores in bulk, a catalog import is
// never split into single writes behind the caller's back.
func (c CachedProducts) UpsertMany(ctx context.Context, ps []domain.Product) error {
	const op = "CachedProducts.UpsertMany"

	bulk, ok := c.source.(port.ProductsBulk)
	if !ok {
		return fmt.Errorf("%s: %w", op, errors.ErrUnsupported)
	}
	if err := bulk.UpsertMany(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return c.cache.UpsertMany(ctx, ps)
}

func (c CachedProducts) Delete(ctx context.Context, slug string) error {
	const op = "CachedProducts.Delete"

	if err := c.source.Delete(ctx, slug); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// the cache may already have it removed by a catalog event
	_ = c.cache.Apply(ctx, []domain.CatalogEvent{
		{Product: domain.Product{Slug: slug}, Deleted: true},
	})
	return nil
}
