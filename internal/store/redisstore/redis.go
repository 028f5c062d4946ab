// Package redisstore keeps objects as plain Redis string values.
package redisstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ziphuff/zmh/internal/store"
)

// ErrNilClient is returned by New when no client is given.
var ErrNilClient = errors.New("redisstore: nil client")

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a Redis storage backend.
type Store struct {
	rdb         goredis.UniversalClient
	prefix      string
	ttl         time.Duration
	closeClient bool
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL sets an expiry on written objects. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithOwnedClient makes Close also close the client.
func WithOwnedClient() Option {
	return func(s *Store) { s.closeClient = true }
}

// New creates a store on top of an existing client.
func New(client goredis.UniversalClient, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &Store{rdb: client}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dial connects to the server at addr and returns a store owning the client.
func Dial(ctx context.Context, addr string, opts ...Option) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return New(client, append(opts, WithOwnedClient())...)
}

// Open reads the whole value stored under key.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Create returns a writer that stores the value with SET on Close.
func (s *Store) Create(ctx context.Context, key string) (io.WriteCloser, error) {
	return &writer{ctx: ctx, store: s, key: s.prefix + key}, nil
}

// Close releases the client when the store owns it.
func (s *Store) Close() error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

type writer struct {
	bytes.Buffer
	ctx   context.Context
	store *Store
	key   string
}

func (w *writer) Close() error {
	if err := w.store.rdb.Set(w.ctx, w.key, w.Bytes(), w.store.ttl).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", w.key, err)
	}
	return nil
}
