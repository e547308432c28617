package service_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/niksmo/storefront/internal/core/domain"
)

type MockProductsStorage struct {
	mock.Mock
}

func (m *MockProductsStorage) Get(ctx context.Context, slug string) (domain.Product, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsStorage) Upsert(ctx context.Context, p domain.Product) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type MockCartStorage struct {
	mock.Mock
}

func (m *MockCartStorage) LoadCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartStorage) SaveCart(ctx context.Context, sessionID string, c domain.Cart) error {
	return m.Called(ctx, sessionID, c).Error(0)
}

func (m *MockCartStorage) DeleteCart(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type MockContentStorage struct {
	mock.Mock
}

func (m *MockContentStorage) BlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *MockContentStorage) ForumThreads(ctx context.Context) ([]domain.ForumThread, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ForumThread), args.Error(1)
}

type MockCatalogProducer struct {
	mock.Mock
}

func (m *MockCatalogProducer) ProduceCatalogEvents(ctx context.Context, es []domain.CatalogEvent) error {
	return m.Called(ctx, es).Error(0)
}

type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) Apply(ctx context.Context, es []domain.CatalogEvent) error {
	return m.Called(ctx, es).Error(0)
}

type MockCartEventEmitter struct {
	mock.Mock
}

func (m *MockCartEventEmitter) EmitCartEvent(ctx context.Context, e domain.CartEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockCartEventEmitter) Close() {
	m.Called()
}

type MockPopularityReader struct {
	mock.Mock
}

func (m *MockPopularityReader) Popularity(ctx context.Context, slugs []string) (map[string]int, error) {
	args := m.Called(ctx, slugs)
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockPopularityProcessor struct {
	mock.Mock
}

func (m *MockPopularityProcessor) Run(ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup) {
	m.Called(ctx, stopFn, wg)
	wg.Done()
}

func (m *MockPopularityProcessor) Close() {
	m.Called()
}

type MockBulkProductsStorage struct {
	MockProductsStorage
}

func (m *MockBulkProductsStorage) UpsertMany(ctx context.Context, ps []domain.Product) error {
	return m.Called(ctx, ps).Error(0)
}
