package zmh

import (
	"go.uber.org/zap"

	"github.com/ziphuff/zmh/internal/stats"
	"github.com/ziphuff/zmh/internal/store"
)

// Option configures a Compressor.
type Option interface {
	apply(*options)
}

// options holds the compressor configuration.
type options struct {
	store  store.Store
	stats  stats.Collector
	logger *zap.Logger
	suffix string
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
		suffix: Suffix,
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithStore sets the storage backend used by EncodeKey and DecodeKey.
// The compressor takes ownership and closes it in Close.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithSuffix overrides the extension, without the dot, that EncodeKey
// appends and DecodeKey strips. Default is "zmh".
func WithSuffix(s string) Option {
	return optionFunc(func(o *options) {
		o.suffix = s
	})
}
