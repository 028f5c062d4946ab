package cachedstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ziphuff/zmh/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store wraps another Store with caching.
type Store struct {
	underlying store.Store
	backend    Backend
}

// New creates a new cached store wrapping the given store.
func New(underlying store.Store, backend Backend) *Store {
	return &Store{
		underlying: underlying,
		backend:    backend,
	}
}

// Open returns the object under key, reading it fully from the
// underlying store on a miss and caching the result.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if data, ok := s.backend.Get(key); ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	r, err := s.underlying.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	s.backend.Set(key, data)
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create invalidates any cached copy and writes through to the underlying store.
func (s *Store) Create(ctx context.Context, key string) (io.WriteCloser, error) {
	s.backend.Remove(key)
	return s.underlying.Create(ctx, key)
}

// Close closes the underlying store and releases the cache backend.
func (s *Store) Close() error {
	err := s.underlying.Close()
	if c, ok := s.backend.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	return s.backend.Stats()
}
