package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/stats"
	statslogger "github.com/ziphuff/zmh/internal/stats/logger"
	promstats "github.com/ziphuff/zmh/internal/stats/prometheus"
	"github.com/ziphuff/zmh/internal/store/locator"
)

var (
	// Global flags.
	file            string
	verbose         bool
	cacheSize       int
	cacheStrategy   string
	metricsTextfile string
	s3Region        string
	s3Endpoint      string

	// Set up in PersistentPreRunE.
	logger    *zap.Logger
	collector stats.Collector
	registry  *prometheus.Registry
)

var rootCmd = &cobra.Command{
	Use:   "zmh",
	Short: "Compress files with a static prefix code",
	Long: `zmh compresses a file with a byte-level prefix code built from the
file's own symbol frequencies, and restores it again.

Locations may be local paths or gs://bucket/key, s3://bucket/key and
redis://host:port/key.

Examples:
  # Encode book.txt into book.txt.zmh, or decode book.txt.zmh into book.txt
  zmh -f book.txt
  zmh -f book.txt.zmh

  # Show the code table of an encoded file
  zmh inspect book.txt.zmh

  # Compare against gzip, zstd and s2
  zmh bench book.txt`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runAuto,
}

func init() {
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "file to encode, or to decode if it ends in .zmh")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().IntVar(&cacheSize, "cache-size", 4, "objects kept in the read cache for remote inputs (0 disables)")
	rootCmd.PersistentFlags().StringVar(&cacheStrategy, "cache-strategy", locator.CacheLRU, "read cache strategy (lru counts objects, bigcache counts megabytes)")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().StringVar(&s3Region, "s3-region", "", "AWS region for s3:// locations")
	rootCmd.PersistentFlags().StringVar(&s3Endpoint, "s3-endpoint", "", "custom endpoint for s3:// locations")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	switch {
	case metricsTextfile != "":
		registry = prometheus.NewRegistry()
		collector = promstats.New(registry, promstats.WithLogger(logger))
	case verbose:
		collector = statslogger.New(logger)
	default:
		collector = stats.NewNoop()
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	if registry == nil {
		return nil
	}
	if err := promstats.WriteTextfile(metricsTextfile, registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func runAuto(cmd *cobra.Command, args []string) error {
	if file == "" {
		return cmd.Help()
	}
	if zmh.HasSuffix(file) {
		return decodeOne(cmd, file)
	}
	return encodeOne(cmd, file)
}

// openCompressor opens the store holding raw and returns a compressor
// over it along with the object key. The caller closes the compressor.
func openCompressor(ctx context.Context, raw string) (*zmh.Compressor, string, error) {
	loc, err := locator.Parse(raw)
	if err != nil {
		return nil, "", err
	}

	// Local reads are cheap to repeat, so only remote stores get a cache.
	size := cacheSize
	if loc.Scheme == locator.SchemeFile {
		size = 0
	}

	st, err := locator.Open(ctx, loc, locator.Config{
		CacheSize:     size,
		CacheStrategy: cacheStrategy,
		Collector:     collector,
		S3Region:      s3Region,
		S3Endpoint:    s3Endpoint,
	})
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", loc, err)
	}

	c, err := zmh.New(
		zmh.WithStore(st),
		zmh.WithLogger(logger.With(zap.String("location", loc.String()))),
		zmh.WithStats(collector),
	)
	if err != nil {
		st.Close()
		return nil, "", err
	}
	return c, loc.Key, nil
}
