package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType reports that a cached value could not be converted to
// the type the caller asked for. It usually means two call sites share a key
// but expect different types.
var ErrInvalidResultType = errors.New("cache: cached value has unexpected type")

// KeySerializer builds a cache key from a method name + arbitrary args.
// It is responsible for producing stable keys across calls. Keys must
// incorporate every argument: two reads with different arguments may never
// alias a single cache slot.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations the repository
// decorators need: fetch-or-compute, single-key deletion, and bulk key
// invalidation for tag-based revalidation.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	Delete(ctx context.Context, key string) error
	InvalidateKeys(ctx context.Context, keys []string) error
}

// GetOrFetch is a type-safe wrapper that provides generic support for
// CacheService. A nil cached value converts to the zero value of T; a value
// of the wrong type surfaces ErrInvalidResultType instead of panicking.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T", ErrInvalidResultType, result)
	}
	return typed, nil
}
