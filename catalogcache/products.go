package catalogcache

import (
	"context"

	"github.com/goliatone/go-product-catalog/cache"
	"github.com/goliatone/go-product-catalog/catalog"
)

// Interface assertion to ensure Products implements catalog.ProductRepository
var _ catalog.ProductRepository = (*Products)(nil)

// listResult wraps the tuple result from List operations for caching.
type listResult struct {
	Summaries []catalog.ProductSummary `json:"summaries"`
	Total     int                      `json:"total"`
}

// Products decorates a product repository with read-through caching and tag
// invalidation. Reads are cached under keys parameterized by their
// arguments and registered under TagProduct; writes pass through to the
// base repository and raise the tag on success, so stale reads last at most
// until the next mutation or the cache TTL, whichever comes first.
type Products struct {
	base catalog.ProductRepository
	keys cache.KeySerializer
	inv  *Invalidator
}

// NewProducts wraps base with the caching decorator. The invalidator is
// shared with other decorators (reviews) whose writes must revalidate
// product reads.
func NewProducts(base catalog.ProductRepository, keys cache.KeySerializer, inv *Invalidator) *Products {
	return &Products{base: base, keys: keys, inv: inv}
}

// GetByID retrieves a product through the cache. The key includes the id:
// reading product A then product B inside the freshness window returns each
// product's own data, never an aliased slot.
func (c *Products) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	key := c.keys.SerializeKey("products.get", id)
	c.register(ctx, key)
	return cache.GetOrFetch(ctx, c.inv.cache, key, func(ctx context.Context) (*catalog.Product, error) {
		return c.base.GetByID(ctx, id)
	})
}

// List retrieves one page of summaries through the cache. Each filter
// combination occupies its own slot.
func (c *Products) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.ProductSummary, int, error) {
	filter = filter.Normalize()
	key := c.keys.SerializeKey("products.list", filter)
	c.register(ctx, key)

	res, err := cache.GetOrFetch(ctx, c.inv.cache, key, func(ctx context.Context) (listResult, error) {
		summaries, total, err := c.base.List(ctx, filter)
		return listResult{Summaries: summaries, Total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return res.Summaries, res.Total, nil
}

// Create passes through to the base repository and raises TagProduct on
// success. A failed write invalidates nothing.
func (c *Products) Create(ctx context.Context, in catalog.CreateProductInput) (*catalog.Product, error) {
	product, err := c.base.Create(ctx, in)
	if err == nil {
		c.inv.Invalidate(ctx, TagProduct)
	}
	return product, err
}

// Update passes through and raises TagProduct on success.
func (c *Products) Update(ctx context.Context, id string, in catalog.UpdateProductInput) (*catalog.Product, error) {
	product, err := c.base.Update(ctx, id, in)
	if err == nil {
		c.inv.Invalidate(ctx, TagProduct)
	}
	return product, err
}

// Delete passes through and raises TagProduct on success.
func (c *Products) Delete(ctx context.Context, id string) error {
	err := c.base.Delete(ctx, id)
	if err == nil {
		c.inv.Invalidate(ctx, TagProduct)
	}
	return err
}

// register records the key under TagProduct plus any tags carried by the
// context.
func (c *Products) register(ctx context.Context, key string) {
	c.inv.register(key, append(tagsFromContext(ctx), TagProduct)...)
}
