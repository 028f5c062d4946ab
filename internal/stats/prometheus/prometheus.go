// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ziphuff/zmh/internal/stats"
)

// help holds descriptions for the metrics the library emits.
// Unknown names fall back to the name itself.
var help = map[string]string{
	stats.MetricEncodes:       "Number of completed encode operations.",
	stats.MetricDecodes:       "Number of completed decode operations.",
	stats.MetricFailures:      "Number of encode or decode operations that failed.",
	stats.MetricInputBytes:    "Bytes read by encode and decode operations.",
	stats.MetricOutputBytes:   "Bytes written by encode and decode operations.",
	stats.MetricModelSymbols:  "Distinct symbols in the most recent code table.",
	stats.MetricMaxCodeLength: "Longest code in the most recent code table, in bits.",
	stats.MetricEncodeSeconds: "Encode latency in seconds.",
	stats.MetricDecodeSeconds: "Decode latency in seconds.",
	stats.MetricCacheHits:     "Read cache hits.",
	stats.MetricCacheMisses:   "Read cache misses.",
	stats.MetricCacheSize:     "Entries held by the read cache.",
}

// Collector implements stats.Collector using Prometheus metrics.
type Collector struct {
	registry prometheus.Registerer
	logger   *zap.Logger

	mu         sync.RWMutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*Collector)

// WithLogger reports metrics that could not be registered.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer, opts ...Option) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	c := &Collector{
		registry:   registry,
		logger:     zap.NewNop(),
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	counter := getOrCreate(c, c.counters, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: helpFor(name)})
	})
	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	gauge := getOrCreate(c, c.gauges, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: helpFor(name)})
	})
	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	histogram := getOrCreate(c, c.histograms, name, func() prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    helpFor(name),
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		})
	})
	histogram.Observe(value)
}

// WriteTextfile writes every metric in g to path in the text exposition
// format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// getOrCreate returns the metric registered under name, creating and
// registering it on first use. A metric already registered elsewhere
// under the same name is reused. Any other registration error is logged
// and the metric is kept unregistered, so its values are not exported.
func getOrCreate[M prometheus.Collector](c *Collector, metrics map[string]M, name string, create func() M) M {
	c.mu.RLock()
	m, ok := metrics[name]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok = metrics[name]; ok {
		return m
	}

	m = create()
	if err := c.registry.Register(m); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(M); ok {
				metrics[name] = existing
				return existing
			}
		}
		c.logger.Warn("metric not registered",
			zap.String("name", name),
			zap.Error(err),
		)
	}
	metrics[name] = m
	return m
}

func helpFor(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}
