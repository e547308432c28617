package service

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	_ port.CatalogBrowser = (*Service)(nil)
	_ port.CatalogEditor  = (*Service)(nil)
	_ port.CatalogSyncer  = (*Service)(nil)
	_ port.CartManager    = (*Service)(nil)
	_ port.Recommender    = (*Service)(nil)
	_ port.ContentReader  = (*Service)(nil)
)

const (
	DefaultRecommendLimit = 3
	DefaultSimilarLimit   = 4
)

type Service struct {
	products port.ProductsStorage
	content  port.ContentStorage
	carts    port.CartStorage

	catalogCache    port.CatalogCache
	catalogProducer port.CatalogEventsProducer
	cartEvents      port.CartEventEmitter
	popularity      port.PopularityReader
	popularityProc  port.PopularityProcessor

	pricing        cart.Pricing
	recommendLimit int
	similarLimit   int
}

type ServiceOpt func(*Service)

// CatalogCacheOpt sets the cache that catalog events are applied to.
func CatalogCacheOpt(c port.CatalogCache) ServiceOpt {
	return func(s *Service) { s.catalogCache = c }
}

func CatalogProducerOpt(p port.CatalogEventsProducer) ServiceOpt {
	return func(s *Service) { s.catalogProducer = p }
}

func CartEventsOpt(e port.CartEventEmitter) ServiceOpt {
	return func(s *Service) { s.cartEvents = e }
}

// PopularityOpt enables popularity ordering for sort=pop. The processor
// may be nil when another instance maintains the table.
func PopularityOpt(r port.PopularityReader, p port.PopularityProcessor) ServiceOpt {
	return func(s *Service) {
		s.popularity = r
		s.popularityProc = p
	}
}

func PricingOpt(p cart.Pricing) ServiceOpt {
	return func(s *Service) { s.pricing = p }
}

func RecommendLimitOpt(n int) ServiceOpt {
	return func(s *Service) {
		if n > 0 {
			s.recommendLimit = n
		}
	}
}

func New(
	products port.ProductsStorage,
	content port.ContentStorage,
	carts port.CartStorage,
	opts ...ServiceOpt,
) *Service {
	s := &Service{
		products:       products,
		content:        content,
		carts:          carts,
		pricing:        cart.NewPricing(),
		recommendLimit: DefaultRecommendLimit,
		similarLimit:   DefaultSimilarLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts the popularity processor when configured.
//
// Blocks current goroutine while the processor is preparing to ready state.
func (s *Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	if s.popularityProc != nil {
		var wg sync.WaitGroup
		wg.Add(1)
		go s.popularityProc.Run(ctx, stopFn, &wg)
		wg.Wait()
	}
}

func (s *Service) Close() {
	if s.popularityProc != nil {
		s.popularityProc.Close()
	}
	if s.cartEvents != nil {
		s.cartEvents.Close()
	}
}
