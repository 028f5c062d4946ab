// Package memstore provides an in-memory store implementation for testing.
package memstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/ziphuff/zmh/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory store.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	opens   map[string]int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
		opens:   make(map[string]int),
	}
}

// Put sets the data for key. The data is copied.
func (s *Store) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = bytes.Clone(data)
}

// Get returns the data stored under key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Opens returns how many times key has been opened for reading.
func (s *Store) Opens(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opens[key]
}

// Open returns a reader over a snapshot of the object.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	s.opens[key]++
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create returns a writer that stores the object when closed.
func (s *Store) Create(ctx context.Context, key string) (io.WriteCloser, error) {
	return &writer{store: s, key: key}, nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}

type writer struct {
	bytes.Buffer
	store *Store
	key   string
}

func (w *writer) Close() error {
	w.store.Put(w.key, w.Bytes())
	return nil
}
