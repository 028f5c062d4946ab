// Package memoryzmhfx provides an fx module for an in-memory zmh compressor.
// Useful for testing.
package memoryzmhfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/stats"
	"github.com/ziphuff/zmh/internal/stats/logger"
	"github.com/ziphuff/zmh/internal/store/memstore"
)

// Module provides an in-memory compressor for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memoryzmh",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newCompressor,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("zmh.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New()
}

// Params holds dependencies for creating the compressor.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided compressor.
type Result struct {
	fx.Out

	Compressor *zmh.Compressor
}

func newCompressor(p Params) (Result, error) {
	c, err := zmh.New(
		zmh.WithStore(p.Store),
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
