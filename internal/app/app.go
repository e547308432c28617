package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/sr"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/redis"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/adapter/storage/seed"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/internal/core/survey"
	"github.com/niksmo/storefront/pkg/schema"
)

type serdes struct {
	catalogEvent schema.Serde
	cartEvent    schema.Serde
}

type broker struct {
	security        kafka.Security
	serdes          serdes
	catalogProducer kafka.CatalogProducer
	catalogConsumer kafka.CatalogConsumer
	cartEmitter     kafka.CartEventEmitter
	popularityProc  *kafka.PopularityProcessor
	popularityView  kafka.PopularityView
}

type stores struct {
	sqldb    *storage.SQLDB
	rdb      *goredis.Client
	cache    *storage.MemoryProducts
	products port.ProductsStorage
	content  port.ContentStorage
	carts    port.CartStorage
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	stores     stores
	broker     *broker
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStores()
	if cfg.KafkaEnabled() {
		app.initBroker()
	}
	app.initCoreService()
	if app.broker != nil {
		app.initCatalogConsumer()
	}
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStores() {
	const op = "App.initStores"
	log := slog.With("op", op)
	ctx := app.ctx

	posts, err := seed.BlogPosts()
	if err != nil {
		app.fallDown(op, err)
	}
	threads, err := seed.ForumThreads()
	if err != nil {
		app.fallDown(op, err)
	}
	app.stores.content = storage.NewContentRepository(posts, threads)

	app.stores.cache = storage.NewMemoryProducts(nil)
	if app.cfg.SQLDB == "" {
		ps, err := seed.Products()
		if err != nil {
			app.fallDown(op, err)
		}
		app.stores.cache.Replace(ps)
		app.stores.products = app.stores.cache
		log.Warn("sql_db is not set, serving the seed catalog from memory")
	} else {
		sqldb, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
		if err != nil {
			app.fallDown(op, err)
		}
		app.stores.sqldb = &sqldb

		cached := storage.NewCachedProducts(
			storage.NewProductsRepository(sqldb), app.stores.cache,
		)
		if err := cached.Load(ctx); err != nil {
			app.fallDown(op, err)
		}
		app.stores.products = cached
	}

	if app.cfg.Redis.Addr == "" {
		app.stores.carts = storage.NewMemoryCarts()
		log.Warn("redis is not set, carts are kept in memory")
		return
	}

	rdb, err := redis.NewClient(
		ctx, app.cfg.Redis.Addr, app.cfg.Redis.Password, app.cfg.Redis.DB,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.stores.rdb = rdb
	app.stores.carts = redis.NewCartsRepository(rdb,
		redis.KeyPrefixOpt(app.cfg.Redis.KeyPrefix),
		redis.TTLOpt(app.cfg.Redis.CartTTL),
	)
}

func (app *App) initBroker() {
	app.broker = &broker{}

	sec := kafka.Security{
		User: app.cfg.Broker.SASL.User,
		Pass: app.cfg.Broker.SASL.Pass,
	}
	if app.cfg.TLSEnabled() {
		tls := app.cfg.Broker.TLS
		sec.TLS = adapter.MakeTLSConfig(tls.CA, tls.Cert, tls.Key)
	}
	app.broker.security = sec

	app.initSerdes()
	app.initOutboundAdapters()
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	topics := app.cfg.Broker.Topics
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	catalogEventSerde, err := schema.NewSerdeCatalogEventV1(
		ctx,
		schema.SubjectOpt(topics.CatalogEvents+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	cartEventSerde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(topics.CartEvents+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.serdes = serdes{
		catalogEvent: catalogEventSerde,
		cartEvent:    cartEventSerde,
	}
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	b := app.broker
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics
	popularityGroup := app.cfg.Broker.Consumers.PopularityGroup

	catalogProducer, err := kafka.NewCatalogProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.CatalogEvents, b.security),
		kafka.ProducerEncoderOpt(b.serdes.catalogEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	cartEmitter, err := kafka.NewCartEventEmitter(
		seedBrokers, topics.CartEvents, b.serdes.cartEvent, b.security,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	popularityProc, err := kafka.NewPopularityProcessor(
		seedBrokers, topics.CartEvents, popularityGroup,
		b.serdes.cartEvent, b.security,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	popularityView, err := kafka.NewPopularityView(
		seedBrokers, popularityGroup, b.security,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	b.catalogProducer = catalogProducer
	b.cartEmitter = cartEmitter
	b.popularityProc = popularityProc
	b.popularityView = popularityView
}

func (app *App) initCoreService() {
	pricingOpts := []cart.PricingOpt{
		cart.WithShipping(
			app.cfg.Catalog.ShippingFee, app.cfg.Catalog.FreeShippingFrom,
		),
	}
	for code, percent := range app.cfg.Coupons() {
		pricingOpts = append(pricingOpts, cart.WithCoupon(code, percent))
	}

	opts := []service.ServiceOpt{
		service.CatalogCacheOpt(app.stores.cache),
		service.PricingOpt(cart.NewPricing(pricingOpts...)),
		service.RecommendLimitOpt(app.cfg.Catalog.RecommendLimit),
	}
	if b := app.broker; b != nil {
		opts = append(opts,
			service.CatalogProducerOpt(b.catalogProducer),
			service.CartEventsOpt(b.cartEmitter),
			service.PopularityOpt(b.popularityView, b.popularityProc),
		)
	}

	app.service = service.New(
		app.stores.products, app.stores.content, app.stores.carts, opts...,
	)
}

// initCatalogConsumer joins a group of its own, every instance keeps
// its own read cache and needs every catalog event.
func (app *App) initCatalogConsumer() {
	const op = "App.initCatalogConsumer"

	hostname, err := os.Hostname()
	if err != nil {
		app.fallDown(op, err)
	}
	group := app.cfg.Broker.Consumers.CatalogGroup + "-" + hostname

	catalogConsumer, err := kafka.NewCatalogConsumer(
		kafka.ConsumerClientOpt(
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CatalogEvents,
			group,
			app.broker.security,
		),
		kafka.ConsumerDecoderOpt(app.broker.serdes.catalogEvent),
		kafka.ConsumerCatalogSyncerOpt(app.service),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.broker.catalogConsumer = catalogConsumer
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	s := app.service

	mux := http.NewServeMux()
	httphandler.RegisterHealth(mux)
	httphandler.RegisterCatalog(mux, s, app.cfg.TagMatch())
	httphandler.RegisterAdmin(mux, app.cfg.AdminToken, s, s)
	httphandler.RegisterCart(mux, s)
	httphandler.RegisterSurvey(mux, s, survey.Questions)
	httphandler.RegisterContent(mux, s)

	handler := httphandler.AllowJSON(mux, httphandler.Uploads)
	app.httpServer = httphandler.NewHTTPServer(addr, handler, app.cfg.HandlerTimeout)
}

func (app *App) Run(stopFn context.CancelFunc) {
	if b := app.broker; b != nil {
		go b.popularityView.Run(app.ctx)
		go b.catalogConsumer.Run(app.ctx)
	}
	app.service.Run(app.ctx, stopFn)

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	if b := app.broker; b != nil {
		b.catalogConsumer.Close()
	}
	app.service.Close()
	if b := app.broker; b != nil {
		b.catalogProducer.Close()
	}

	if rdb := app.stores.rdb; rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close redis client", "err", err)
		}
	}
	if sqldb := app.stores.sqldb; sqldb != nil {
		sqldb.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
