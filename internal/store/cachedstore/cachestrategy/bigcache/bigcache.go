// Package bigcache implements a size-bounded cache strategy on allegro/bigcache.
package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/ziphuff/zmh/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy = (*Strategy)(nil)

// Config bounds the cache.
type Config struct {
	// LifeWindow is how long an entry stays valid.
	LifeWindow time.Duration

	// MaxEntrySizeBytes is a hint for the initial shard size.
	MaxEntrySizeBytes int

	// HardMaxCacheSizeMB caps memory use; 0 means unlimited.
	HardMaxCacheSizeMB int
}

// Strategy evicts by age and total size rather than entry count.
type Strategy struct {
	c *bc.BigCache
}

// New creates a new bigcache strategy.
func New(cfg Config) (*Strategy, error) {
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = 10 * time.Minute
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.MaxEntrySizeBytes > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySizeBytes
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}

	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Strategy{c: c}, nil
}

// Get retrieves a value by key.
func (s *Strategy) Get(key string) ([]byte, bool) {
	b, err := s.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

// Add stores a value. Entries larger than the shard limit are silently dropped.
func (s *Strategy) Add(key string, value []byte) {
	_ = s.c.Set(key, value)
}

// Remove drops key.
func (s *Strategy) Remove(key string) {
	_ = s.c.Delete(key)
}

// Len returns the number of items in the cache.
func (s *Strategy) Len() int {
	return s.c.Len()
}

// Close stops the background cleanup goroutine.
func (s *Strategy) Close() error {
	return s.c.Close()
}
