package catalogcache

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-product-catalog/cache"
)

// TagProduct is the shared invalidation tag for the whole catalog. Every
// cached product read registers under it and every catalog mutation raises
// it, so a single product's write revalidates all cached product data.
// Deliberately coarse: precision is traded for a contract that is trivial
// to reason about.
const TagProduct = "product"

// Invalidator tracks which cache keys are live under which tags and deletes
// them when a tag is raised. It is shared by all decorators whose reads
// must be revalidated together.
type Invalidator struct {
	cache cache.CacheService
	tags  *xsync.MapOf[string, *xsync.MapOf[string, struct{}]]
}

// NewInvalidator creates an invalidator over the given cache service.
func NewInvalidator(cacheService cache.CacheService) *Invalidator {
	return &Invalidator{
		cache: cacheService,
		tags:  xsync.NewMapOf[string, *xsync.MapOf[string, struct{}]](),
	}
}

// register records a live cache key under each tag.
func (i *Invalidator) register(key string, tags ...string) {
	for _, tag := range tags {
		set, _ := i.tags.LoadOrStore(tag, xsync.NewMapOf[string, struct{}]())
		set.Store(key, struct{}{})
	}
}

// Invalidate marks every cached entry under the tag stale immediately by
// deleting the registered keys. The next read of any of them refetches from
// the source of truth.
func (i *Invalidator) Invalidate(ctx context.Context, tag string) error {
	set, ok := i.tags.LoadAndDelete(tag)
	if !ok {
		return nil
	}

	var keys []string
	set.Range(func(key string, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})

	return i.cache.InvalidateKeys(ctx, keys)
}

type cacheTagsContextKey struct{}

// WithTags attaches additional invalidation tags to the context. Reads
// performed with the returned context register their cache keys under those
// tags as well as the decorator's own.
func WithTags(ctx context.Context, tags ...string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(tags) == 0 {
		return ctx
	}

	combined := dedupe(append(tagsFromContext(ctx), tags...))
	return context.WithValue(ctx, cacheTagsContextKey{}, combined)
}

func tagsFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if tags, ok := ctx.Value(cacheTagsContextKey{}).([]string); ok {
		return append([]string(nil), tags...)
	}
	return nil
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
