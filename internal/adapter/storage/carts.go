package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartStorage = (*MemoryCarts)(nil)

// MemoryCarts keeps carts per session for the lifetime of the process.
type MemoryCarts struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{carts: make(map[string]domain.Cart)}
}

func (m *MemoryCarts) LoadCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.carts[sessionID]
	return domain.Cart{Items: slices.Clone(c.Items)}, nil
}

func (m *MemoryCarts) SaveCart(ctx context.Context, sessionID string, c domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(c.Items) == 0 {
		delete(m.carts, sessionID)
		return nil
	}
	m.carts[sessionID] = domain.Cart{Items: slices.Clone(c.Items)}
	return nil
}

func (m *MemoryCarts) DeleteCart(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
