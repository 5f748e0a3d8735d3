// Package catalogcache provides cached repository decorators for the
// product catalog.
//
// # Overview
//
// This package implements the repository decorator pattern to add
// read-through caching and tag-based invalidation to the catalog
// repositories. A decorator wraps a base repository (normally the bun
// stores in catalog/bunstore), intercepts read operations to serve them
// from the cache, and delegates write operations to the base repository,
// raising the invalidation tag when they succeed.
//
// # Caching Behavior
//
// Reads follow a read-through pattern:
//
//  1. Serialize a key from the operation name and all of its arguments
//  2. Register the key under the "product" tag
//  3. On a cache hit, return the cached result
//  4. On a miss, call the base repository, store the result, return it
//
// Keys are always parameterized by arguments: GetByID keys include the
// product id and List keys include the whole filter, so distinct reads
// never share a slot.
//
// # Invalidation Contract
//
// A cached read is considered stale and recomputed when either
//
//   - the cache TTL (60 seconds by default) has elapsed since it was
//     computed, or
//   - any catalog mutation raised the "product" tag since then,
//
// whichever comes first. The tag is shared by the entire catalog: creating,
// updating or deleting any product, or attaching a review to any product,
// invalidates every registered product read. This is deliberately coarse.
// Inside the window, concurrent readers may observe a stale value; no read
// ever blocks waiting for a write.
//
// Writes that fail invalidate nothing, and writes performed directly
// against the base store bypass invalidation entirely, the cached value
// then survives until the TTL expires.
//
// # Usage
//
//	inv := catalogcache.NewInvalidator(cacheService)
//	products := catalogcache.NewProducts(productStore, keySerializer, inv)
//	reviews := catalogcache.NewReviews(reviewStore, inv)
//
//	p, err := products.GetByID(ctx, id)        // cached
//	_, err = reviews.Create(ctx, reviewInput)  // raises the product tag
//	p, err = products.GetByID(ctx, id)         // refetched, includes review
//
// Callers can register reads under extra tags with WithTags and raise those
// tags themselves through the Invalidator.
//
// # See Also
//
// For cache configuration and key serialization, see the cache package.
// For wiring, see pkg/di.
package catalogcache
