// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Compressor metrics.
	MetricEncodes       = "zmh_encodes_total"
	MetricDecodes       = "zmh_decodes_total"
	MetricFailures      = "zmh_failures_total"
	MetricInputBytes    = "zmh_input_bytes_total"
	MetricOutputBytes   = "zmh_output_bytes_total"
	MetricModelSymbols  = "zmh_model_symbols"
	MetricMaxCodeLength = "zmh_model_max_code_length_bits"
	MetricEncodeSeconds = "zmh_encode_duration_seconds"
	MetricDecodeSeconds = "zmh_decode_duration_seconds"

	// Cache metrics.
	MetricCacheHits   = "zmh_cache_hits_total"
	MetricCacheMisses = "zmh_cache_misses_total"
	MetricCacheSize   = "zmh_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
