// Package zmhfx provides an fx module for a disk-backed zmh compressor.
package zmhfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/stats"
	"github.com/ziphuff/zmh/internal/stats/logger"
	"github.com/ziphuff/zmh/internal/store/diskstore"
	"github.com/ziphuff/zmh/internal/store/locator"
)

// Config holds configuration for the disk-backed compressor.
type Config struct {
	// DataDir is the directory keys are resolved against.
	DataDir string

	// CacheSize bounds the read cache. Zero disables it.
	CacheSize int

	// CacheStrategy is "lru" (the default) or "bigcache".
	CacheStrategy string
}

// Module provides a disk-backed *zmh.Compressor.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("zmh",
	fx.Provide(
		newStatsCollector,
		newCompressor,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("zmh.stats"))
}

// Params holds dependencies for creating the compressor.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided compressor.
type Result struct {
	fx.Out

	Compressor *zmh.Compressor
}

func newCompressor(p Params) (Result, error) {
	baseStore, err := diskstore.New(p.Config.DataDir)
	if err != nil {
		return Result{}, err
	}

	st, err := locator.WithCache(baseStore, locator.Config{
		CacheSize:     p.Config.CacheSize,
		CacheStrategy: p.Config.CacheStrategy,
		Collector:     p.Collector,
	})
	if err != nil {
		baseStore.Close()
		return Result{}, err
	}

	c, err := zmh.New(
		zmh.WithStore(st),
		zmh.WithStats(p.Collector),
		zmh.WithLogger(p.Logger.Named("zmh")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})

	return Result{Compressor: c}, nil
}
