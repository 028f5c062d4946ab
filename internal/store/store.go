// Package store defines the storage backend interface for original and
// encoded objects.
package store

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when an object does not exist in the store.
var ErrNotFound = errors.New("store: object not found")

// Store defines the interface for storage backends.
// Keys are slash-separated; implementations map them to their own layout.
type Store interface {
	// Open returns a reader over the object stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Create returns a writer that replaces the object under key.
	// The object is complete once Close returns nil.
	Create(ctx context.Context, key string) (io.WriteCloser, error)

	// Close releases any resources held by the store.
	Close() error
}
