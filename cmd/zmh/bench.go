package main

import (
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"

	"github.com/ziphuff/zmh/internal/bench"
	"github.com/ziphuff/zmh/internal/codec"
	"github.com/ziphuff/zmh/internal/codec/gzipcodec"
	"github.com/ziphuff/zmh/internal/codec/noopcodec"
	"github.com/ziphuff/zmh/internal/codec/s2codec"
	"github.com/ziphuff/zmh/internal/codec/zmhcodec"
	"github.com/ziphuff/zmh/internal/codec/zstdcodec"
)

var benchCmd = &cobra.Command{
	Use:   "bench FILE",
	Short: "Compare zmh against general-purpose codecs",
	Long: `Compress and restore FILE with every codec, in parallel, and report
size, ratio and timing. The order-0 entropy of FILE is shown as the
lower bound for any static byte code.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

var (
	benchIterations int
	benchFormat     string
)

func init() {
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 5, "round trips per codec")
	benchCmd.Flags().StringVar(&benchFormat, "format", "text", "report format (text, markdown)")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	write := bench.WriteText
	switch benchFormat {
	case "text":
	case "markdown", "md":
		write = bench.WriteMarkdown
	default:
		return fmt.Errorf("unknown format %q", benchFormat)
	}

	c, key, err := openCompressor(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer c.Close()

	r, err := c.Store().Open(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	codecs := []codec.Codec{
		noopcodec.New(),
		gzipcodec.New(),
		zstdcodec.New(),
		s2codec.New(),
		zmhcodec.New(c),
	}

	report, err := bench.Run(cmd.Context(), data, codecs, bench.Config{
		Name:       path.Base(key),
		Iterations: benchIterations,
	})
	if err != nil {
		return err
	}
	return write(cmd.OutOrStdout(), report)
}
