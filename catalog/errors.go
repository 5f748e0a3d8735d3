package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no matching row exists. It is a distinct outcome
// from a store failure so callers can tell "absent" apart from "broken".
var ErrNotFound = errors.New("catalog: record not found")

// PersistenceError wraps a store-level failure: the store is unreachable or
// a constraint was violated. The underlying cause is preserved for
// errors.Is/As matching.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("catalog: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying store error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
