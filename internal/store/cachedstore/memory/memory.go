// Package memory implements an in-memory cache backend.
package memory

import (
	"io"
	"sync/atomic"

	"github.com/ziphuff/zmh/internal/stats"
	"github.com/ziphuff/zmh/internal/store/cachedstore"
	"github.com/ziphuff/zmh/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Backend implements cachedstore.Backend.
var _ cachedstore.Backend = (*Backend)(nil)

// Backend is a thread-safe in-memory cache backend.
type Backend struct {
	strategy  cachestrategy.Strategy
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new memory backend with the given eviction strategy.
// The collector is optional; if nil, a no-op collector is used.
func New(strategy cachestrategy.Strategy, collector stats.Collector) *Backend {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Backend{
		strategy:  strategy,
		collector: collector,
	}
}

// Get retrieves object data from the cache.
func (b *Backend) Get(key string) ([]byte, bool) {
	val, ok := b.strategy.Get(key)
	if ok {
		b.hits.Add(1)
		b.collector.IncCounter(stats.MetricCacheHits, 1)
		return val, true
	}
	b.misses.Add(1)
	b.collector.IncCounter(stats.MetricCacheMisses, 1)
	return nil, false
}

// Set stores object data in the cache.
func (b *Backend) Set(key string, data []byte) {
	b.strategy.Add(key, data)
	b.collector.SetGauge(stats.MetricCacheSize, int64(b.strategy.Len()))
}

// Remove drops key from the cache.
func (b *Backend) Remove(key string) {
	b.strategy.Remove(key)
	b.collector.SetGauge(stats.MetricCacheSize, int64(b.strategy.Len()))
}

// Stats returns current cache statistics.
func (b *Backend) Stats() cachedstore.Stats {
	return cachedstore.Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Size:   b.strategy.Len(),
	}
}

// Len returns the number of items in the cache.
func (b *Backend) Len() int {
	return b.strategy.Len()
}

// Close releases the strategy if it holds resources.
func (b *Backend) Close() error {
	if c, ok := b.strategy.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
