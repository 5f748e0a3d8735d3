package di

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-product-catalog/cache"
	"github.com/goliatone/go-product-catalog/catalog"
	"github.com/goliatone/go-product-catalog/catalog/bunstore"
	"github.com/goliatone/go-product-catalog/catalogcache"
	"github.com/goliatone/go-product-catalog/config"
)

// Config carries everything the container needs to wire the catalog layer.
type Config struct {
	Store  bunstore.Config
	Cache  cache.Config
	Logger zerolog.Logger
}

// Container wires the catalog layer: the shared database handle, the bun
// stores, the cache service, and the cached repository decorators. It is
// built once at startup and released with Shutdown.
type Container struct {
	db            *bun.DB
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	invalidator   *catalogcache.Invalidator

	productStore *bunstore.ProductStore
	reviewStore  *bunstore.ReviewStore
	products     *catalogcache.Products
	reviews      *catalogcache.Reviews
}

// New creates a container from the provided configuration. It opens the
// store handle, initializes the cache service, and wires the cached
// repositories around the bun stores.
func New(cfg Config) (*Container, error) {
	db, err := bunstore.Open(cfg.Store)
	if err != nil {
		return nil, err
	}

	cacheService, err := cache.NewCacheService(cfg.Cache)
	if err != nil {
		db.Close()
		return nil, err
	}

	keySerializer := cache.NewDefaultKeySerializer()
	invalidator := catalogcache.NewInvalidator(cacheService)

	productStore := bunstore.NewProductStore(db, cfg.Logger)
	reviewStore := bunstore.NewReviewStore(db, cfg.Logger)

	return &Container{
		db:            db,
		cacheService:  cacheService,
		keySerializer: keySerializer,
		invalidator:   invalidator,
		productStore:  productStore,
		reviewStore:   reviewStore,
		products:      catalogcache.NewProducts(productStore, keySerializer, invalidator),
		reviews:       catalogcache.NewReviews(reviewStore, invalidator),
	}, nil
}

// NewWithDefaults creates a container using the default cache configuration
// (60 second freshness window) and a no-op logger.
func NewWithDefaults(store bunstore.Config) (*Container, error) {
	return New(Config{
		Store:  store,
		Cache:  cache.DefaultConfig(),
		Logger: zerolog.Nop(),
	})
}

// NewFromEnv creates a container from environment configuration (see the
// config package for the variables honored).
func NewFromEnv(logger zerolog.Logger) (*Container, error) {
	env := config.Load()

	cacheCfg := cache.DefaultConfig()
	cacheCfg.TTL = env.CacheTTL
	cacheCfg.Capacity = env.CacheCapacity

	return New(Config{
		Store:  bunstore.Config{Driver: env.DBDriver, DSN: env.DBDSN},
		Cache:  cacheCfg,
		Logger: logger,
	})
}

// CreateSchema creates the catalog tables if they do not exist.
func (c *Container) CreateSchema(ctx context.Context) error {
	return bunstore.CreateSchema(ctx, c.db)
}

// Products returns the cached product repository. Reads are served through
// the cache; mutations raise the product invalidation tag.
func (c *Container) Products() catalog.ProductRepository {
	return c.products
}

// Reviews returns the invalidating review repository.
func (c *Container) Reviews() catalog.ReviewRepository {
	return c.reviews
}

// ProductStore returns the uncached product store, for callers that need to
// bypass the cache (seeding, freshness-sensitive reads).
func (c *Container) ProductStore() *bunstore.ProductStore {
	return c.productStore
}

// ReviewStore returns the uncached review store.
func (c *Container) ReviewStore() *bunstore.ReviewStore {
	return c.reviewStore
}

// Invalidator returns the shared tag invalidator.
func (c *Container) Invalidator() *catalogcache.Invalidator {
	return c.invalidator
}

// DB exposes the shared database handle.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Shutdown releases the store connection. The container must not be used
// afterward.
func (c *Container) Shutdown(ctx context.Context) error {
	return c.db.Close()
}
