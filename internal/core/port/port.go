package port

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound ports, implemented by the core service.

type CatalogBrowser interface {
	Browse(context.Context, domain.Query) (domain.CatalogPage, error)
	Product(ctx context.Context, slug string) (domain.ProductDetail, error)
}

type CatalogEditor interface {
	UpsertProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, slug string) error
}

// CatalogTransfer moves the catalog in and out in bulk.
type CatalogTransfer interface {
	ImportProducts(context.Context, []domain.Product) (domain.ImportReport, error)
	ExportProducts(context.Context) ([]domain.Product, error)
}

type CatalogSyncer interface {
	ApplyCatalogEvents(context.Context, []domain.CatalogEvent) error
}

type CartManager interface {
	Cart(ctx context.Context, sessionID string) (domain.Cart, error)
	AddToCart(ctx context.Context, sessionID, slug string, qty int) (domain.Cart, error)
	IncCartItem(ctx context.Context, sessionID, id string) (domain.Cart, error)
	DecCartItem(ctx context.Context, sessionID, id string) (domain.Cart, error)
	RemoveCartItem(ctx context.Context, sessionID, id string) (domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
	CartTotals(ctx context.Context, sessionID, coupon string) (domain.Cart, domain.Totals, error)
}

type Recommender interface {
	Recommend(ctx context.Context, answers domain.Answers, limit int) (domain.Recommendation, error)
}

type ContentReader interface {
	BlogPosts(ctx context.Context, tag string) ([]domain.BlogPost, error)
	BlogPost(ctx context.Context, slug string) (domain.BlogPostDetail, error)
	ForumThreads(ctx context.Context, tag string) ([]domain.ForumThread, error)
	ForumThread(ctx context.Context, slug string) (domain.ForumThreadDetail, error)
}

// Outbound ports, implemented by adapters.

// ProductsStorage returns [domain.ErrNotFound] for unknown slugs.
type ProductsStorage interface {
	Get(ctx context.Context, slug string) (domain.Product, error)
	List(context.Context) ([]domain.Product, error)
	Upsert(context.Context, domain.Product) (domain.Product, error)
	Delete(ctx context.Context, slug string) error
}

// ProductsBulk stores ps so that ps[0] lists first.
type ProductsBulk interface {
	UpsertMany(ctx context.Context, ps []domain.Product) error
}

type CatalogCache interface {
	Apply(context.Context, []domain.CatalogEvent) error
}

type CatalogEventsProducer interface {
	ProduceCatalogEvents(context.Context, []domain.CatalogEvent) error
}

type CatalogEventsConsumer interface {
	Run(context.Context)
	closer
}

// CartStorage returns an empty cart for unknown sessions.
type CartStorage interface {
	LoadCart(ctx context.Context, sessionID string) (domain.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

type CartEventEmitter interface {
	EmitCartEvent(context.Context, domain.CartEvent) error
	closer
}

type PopularityProcessor interface {
	runnerContextWg
	closer
}

// PopularityReader returns cart-add counts per slug.
// Slugs without data are absent from the result.
type PopularityReader interface {
	Popularity(ctx context.Context, slugs []string) (map[string]int, error)
}

type ContentStorage interface {
	BlogPosts(context.Context) ([]domain.BlogPost, error)
	ForumThreads(context.Context) ([]domain.ForumThread, error)
}
