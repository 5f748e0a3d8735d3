// Package catalog defines the product catalog domain: entities, inputs with
// validation, error taxonomy, and the repository contracts the storage and
// caching layers implement.
//
// The error discipline is uniform across every operation: a missing row is
// catalog.ErrNotFound, a store failure is *catalog.PersistenceError, and
// rejected input is a validation error from the input's Validate method.
// Callers can always distinguish "absent", "empty" and "failed".
package catalog
