package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.ProductsStorage = (*MemoryProducts)(nil)
	_ port.CatalogCache    = (*MemoryProducts)(nil)
	_ port.ProductsBulk    = (*MemoryProducts)(nil)
)

// MemoryProducts is an in-process catalog. Upsert replaces an existing
// slug in place and puts a new one first.
type MemoryProducts struct {
	mu sync.RWMutex
	ps []domain.Product
}

func NewMemoryProducts(ps []domain.Product) *MemoryProducts {
	return &MemoryProducts{ps: slices.Clone(ps)}
}

func (m *MemoryProducts) Get(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "MemoryProducts.Get"

	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(slug)
	if i < 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return m.ps[i], nil
}

func (m *MemoryProducts) List(context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.ps), nil
}

func (m *MemoryProducts) Upsert(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsert(p)
	return p, nil
}

// UpsertMany keeps the order of ps for new slugs.
func (m *MemoryProducts) UpsertMany(ctx context.Context, ps []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range slices.Backward(ps) {
		m.upsert(p)
	}
	return nil
}

func (m *MemoryProducts) Delete(ctx context.Context, slug string) error {
	const op = "MemoryProducts.Delete"

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.delete(slug) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// Apply replays catalog events in order. Deleting an unknown slug is a
// no-op, so a replayed feed converges to the same catalog.
func (m *MemoryProducts) Apply(ctx context.Context, es []domain.CatalogEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range es {
		if e.Deleted {
			m.delete(e.Product.Slug)
			continue
		}
		m.upsert(e.Product)
	}
	return nil
}

// Replace swaps the whole catalog, keeping the given order.
func (m *MemoryProducts) Replace(ps []domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ps = slices.Clone(ps)
}

func (m *MemoryProducts) upsert(p domain.Product) {
	if i := m.index(p.Slug); i >= 0 {
		m.ps[i] = p
		return
	}
	m.ps = slices.Insert(m.ps, 0, p)
}

func (m *MemoryProducts) delete(slug string) bool {
	n := len(m.ps)
	m.ps = slices.DeleteFunc(m.ps, func(p domain.Product) bool {
		return p.Slug == slug
	})
	return len(m.ps) != n
}

func (m *MemoryProducts) index(slug string) int {
	return slices.IndexFunc(m.ps, func(p domain.Product) bool {
		return p.Slug == slug
	})
}
