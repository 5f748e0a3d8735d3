// Package cache provides caching interfaces and key serialization for the
// catalog's read-through cache.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - CacheService: A generic caching interface for read-through operations
//     with bulk key invalidation
//   - KeySerializer: Builds stable cache keys from method names and arguments
//
// The cache package is designed to work with the repository decorators in
// catalogcache, which cache read operations while keeping type safety
// through generics.
//
// # Basic Usage
//
// The simplest way to use the cache package is with the default key serializer:
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("products.get", "prod-123")
//
// For repository caching, you would typically use this with a CacheService
// implementation:
//
//	product, err := cache.GetOrFetch(ctx, cacheService, key, func(ctx context.Context) (*catalog.Product, error) {
//		return store.GetByID(ctx, "prod-123")
//	})
//
// # Key Serialization Strategy
//
// The default key serializer uses reflection to handle various Go types:
//
//   - Basic types: Direct string representation
//   - Slices/arrays: Recursive serialization of elements
//   - Maps: Sorted key-value pairs for deterministic output
//   - Structs: Exported fields with name:value pairs (listing filters rely
//     on this so every filter combination gets its own slot)
//   - Function pointers: %p formatting, stable within a process
//   - Complex types: JSON fallback
//
// Keys always incorporate every argument. A read parameterized by a record
// id must never share a slot with a read for a different id; the serializer
// guarantees that as long as callers pass the id as an argument.
//
// # Error Handling
//
// The package prioritizes stability over perfection. When JSON marshaling
// fails, the key serializer falls back to type information rather than
// panicking. Type mismatches between a cached value and the caller's
// expected type surface as ErrInvalidResultType.
//
// # See Also
//
// For the cached repository decorators and tag invalidation, see the
// catalogcache package. For the sturdyc-backed service, see
// internal/cacheinfra.
package cache
