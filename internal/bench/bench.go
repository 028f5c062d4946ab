// Package bench compares codecs on a single input.
package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/ziphuff/zmh/internal/codec"
	"github.com/ziphuff/zmh/internal/freq"
)

// ErrMismatch indicates a codec did not reproduce its input.
var ErrMismatch = errors.New("bench: round trip mismatch")

// Timing summarizes repeated measurements, in seconds.
type Timing struct {
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

// Result holds the measurements for one codec.
type Result struct {
	Codec           string
	Extension       string
	OriginalBytes   int64
	CompressedBytes int64
	Encode          Timing
	Decode          Timing
}

// Ratio returns CompressedBytes / OriginalBytes.
func (r Result) Ratio() float64 {
	if r.OriginalBytes == 0 {
		return 0
	}
	return float64(r.CompressedBytes) / float64(r.OriginalBytes)
}

// EncodeThroughput returns original bytes per second of encoding.
func (r Result) EncodeThroughput() float64 {
	if r.Encode.Mean == 0 {
		return 0
	}
	return float64(r.OriginalBytes) / r.Encode.Mean
}

// Report is the outcome of one benchmark run.
type Report struct {
	Input      string
	InputBytes int64
	Iterations int

	// Entropy is the order-0 Shannon entropy of the input in bits per byte.
	Entropy float64

	// Results are sorted by compressed size, smallest first.
	Results []Result
}

// EntropyBound returns the smallest size, in bytes, any order-0 code can
// reach on this input.
func (r *Report) EntropyBound() float64 {
	return r.Entropy * float64(r.InputBytes) / 8
}

// Config controls a run.
type Config struct {
	// Name labels the input in reports.
	Name string

	// Iterations per codec. Defaults to 1.
	Iterations int
}

// Run encodes and decodes data with every codec, one goroutine per codec.
func Run(ctx context.Context, data []byte, codecs []codec.Codec, cfg Config) (*Report, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}

	f := freq.New()
	f.Add(data)

	report := &Report{
		Input:      cfg.Name,
		InputBytes: int64(len(data)),
		Iterations: cfg.Iterations,
		Entropy:    Entropy(f),
		Results:    make([]Result, len(codecs)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range codecs {
		g.Go(func() error {
			res, err := measure(ctx, c, data, cfg.Iterations)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name(), err)
			}
			report.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].CompressedBytes < report.Results[j].CompressedBytes
	})
	return report, nil
}

func measure(ctx context.Context, c codec.Codec, data []byte, iterations int) (Result, error) {
	res := Result{
		Codec:         c.Name(),
		Extension:     c.Extension(),
		OriginalBytes: int64(len(data)),
	}
	enc := make([]float64, 0, iterations)
	dec := make([]float64, 0, iterations)

	var compressed bytes.Buffer
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		compressed.Reset()
		start := time.Now()
		w, err := c.Writer(&compressed)
		if err != nil {
			return res, fmt.Errorf("creating writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return res, fmt.Errorf("compressing: %w", err)
		}
		if err := w.Close(); err != nil {
			return res, fmt.Errorf("compressing: %w", err)
		}
		enc = append(enc, time.Since(start).Seconds())
		res.CompressedBytes = int64(compressed.Len())

		start = time.Now()
		r, err := c.Reader(bytes.NewReader(compressed.Bytes()))
		if err != nil {
			return res, fmt.Errorf("creating reader: %w", err)
		}
		out, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return res, fmt.Errorf("decompressing: %w", err)
		}
		dec = append(dec, time.Since(start).Seconds())

		if !bytes.Equal(out, data) {
			return res, ErrMismatch
		}
	}

	res.Encode = summarize(enc)
	res.Decode = summarize(dec)
	return res, nil
}

func summarize(xs []float64) Timing {
	if len(xs) == 0 {
		return Timing{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	t := Timing{
		Mean:   stat.Mean(xs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(xs) > 1 {
		t.StdDev = stat.StdDev(xs, nil)
	}
	return t
}
