// Package zmh compresses files with a static, byte-oriented prefix code.
//
// An encoded file starts with the code table and is followed by the packed
// codes of every input byte. The input is read twice: once to count byte
// frequencies and once to emit codes, so Encode needs a seekable source.
//
// Example usage:
//
//	c, err := zmh.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	res, err := c.Encode(ctx, src, dst)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("ratio: %.3f\n", res.Ratio())
package zmh

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ziphuff/zmh/internal/bitstream"
	"github.com/ziphuff/zmh/internal/freq"
	"github.com/ziphuff/zmh/internal/huffman"
	"github.com/ziphuff/zmh/internal/model"
	"github.com/ziphuff/zmh/internal/stats"
	"github.com/ziphuff/zmh/internal/store"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNoStore indicates a key operation on a compressor without a store.
	ErrNoStore = errors.New("zmh: no store provided")

	// ErrNotEncoded indicates DecodeKey was given a key without the suffix.
	ErrNotEncoded = errors.New("zmh: not an encoded file")

	// ErrClosed indicates the compressor has been closed.
	ErrClosed = errors.New("zmh: compressor closed")

	ErrEmptyStream      = model.ErrEmptyStream
	ErrTruncatedModel   = model.ErrTruncatedModel
	ErrDuplicateSymbol  = model.ErrDuplicateSymbol
	ErrInvalidModel     = model.ErrInvalidModel
	ErrCorruptBitstream = bitstream.ErrCorruptBitstream
	ErrSourceChanged    = bitstream.ErrSourceChanged
	ErrCodeTooLong      = huffman.ErrCodeTooLong
)

// Compressor encodes and decodes zmh data.
// A Compressor is safe for concurrent use by multiple goroutines.
type Compressor struct {
	store  store.Store
	stats  stats.Collector
	logger *zap.Logger
	suffix string
	closed atomic.Bool
}

// New creates a new Compressor with the given options.
func New(opts ...Option) (*Compressor, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.suffix == "" {
		return nil, errors.New("zmh: empty suffix")
	}

	c := &Compressor{
		store:  cfg.store,
		stats:  cfg.stats,
		logger: cfg.logger,
		suffix: cfg.suffix,
	}

	c.logger.Debug("compressor initialized",
		zap.Bool("hasStore", c.store != nil),
		zap.String("suffix", c.suffix),
	)

	return c, nil
}

// Encode reads src twice, from its current offset to the end, and writes
// the encoded form to dst. An empty src produces no output at all.
func (c *Compressor) Encode(ctx context.Context, src io.ReadSeeker, dst io.Writer) (*Result, error) {
	offset, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating input offset: %w", err)
	}
	open := func() (io.ReadCloser, error) {
		if _, err := src.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewinding input: %w", err)
		}
		return io.NopCloser(src), nil
	}
	return c.encode(ctx, open, func() (io.Writer, error) { return dst, nil })
}

// Decode reads an encoded stream from src and writes the original bytes to
// dst. An empty src decodes to nothing.
func (c *Compressor) Decode(ctx context.Context, src io.Reader, dst io.Writer) (*Result, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()

	res, err := c.decode(ctx, src, dst)
	if err != nil {
		c.stats.IncCounter(stats.MetricFailures, 1)
		return nil, err
	}
	res.Elapsed = time.Since(start)

	c.stats.IncCounter(stats.MetricDecodes, 1)
	c.stats.IncCounter(stats.MetricInputBytes, res.EncodedBytes)
	c.stats.IncCounter(stats.MetricOutputBytes, res.OriginalBytes)
	c.stats.ObserveHistogram(stats.MetricDecodeSeconds, res.Elapsed.Seconds())

	c.logger.Debug("decoded",
		zap.Int64("encodedBytes", res.EncodedBytes),
		zap.Int64("originalBytes", res.OriginalBytes),
		zap.Int("symbols", res.Symbols),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Inspect reads only the code table from src. An empty src yields an empty table.
func (c *Compressor) Inspect(ctx context.Context, src io.Reader) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := model.ReadHeader(model.NewReader(src))
	if errors.Is(err, model.ErrEmptyStream) {
		return model.NewTable(), nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// EncodeKey encodes the object stored under key and writes the result to
// key plus the suffix in the same store.
func (c *Compressor) EncodeKey(ctx context.Context, key string) (*Result, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}

	open := func() (io.ReadCloser, error) {
		return c.store.Open(ctx, key)
	}

	var out io.WriteCloser
	create := func() (io.Writer, error) {
		w, err := c.store.Create(ctx, encodedName(key, c.suffix))
		if err != nil {
			return nil, err
		}
		out = w
		return w, nil
	}

	res, err := c.encode(ctx, open, create)
	if out != nil {
		if cerr := out.Close(); cerr != nil && err == nil {
			return nil, fmt.Errorf("closing %s: %w", encodedName(key, c.suffix), cerr)
		}
	}
	return res, err
}

// DecodeKey decodes the object stored under key, which must carry the
// suffix, and writes the original bytes to key without it.
func (c *Compressor) DecodeKey(ctx context.Context, key string) (*Result, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}
	if !hasSuffix(key, c.suffix) {
		return nil, fmt.Errorf("%w: %s", ErrNotEncoded, key)
	}

	r, err := c.store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", key, err)
	}
	defer r.Close()

	outKey := decodedName(key, c.suffix)
	w, err := c.store.Create(ctx, outKey)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", outKey, err)
	}

	res, err := c.Decode(ctx, r, w)
	if cerr := w.Close(); cerr != nil && err == nil {
		return nil, fmt.Errorf("closing %s: %w", outKey, cerr)
	}
	return res, err
}

// Close releases the store, if any. After Close, the compressor should not be used.
func (c *Compressor) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			return fmt.Errorf("closing store: %w", err)
		}
	}
	return nil
}

// Store returns the storage backend, or nil.
func (c *Compressor) Store() store.Store {
	return c.store
}

// encode runs both passes. open is called once per pass; create is called
// after the first pass succeeds.
func (c *Compressor) encode(ctx context.Context, open func() (io.ReadCloser, error), create func() (io.Writer, error)) (*Result, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()

	res, err := c.runEncode(ctx, open, create)
	if err != nil {
		c.stats.IncCounter(stats.MetricFailures, 1)
		return nil, err
	}
	res.Elapsed = time.Since(start)

	c.stats.IncCounter(stats.MetricEncodes, 1)
	c.stats.IncCounter(stats.MetricInputBytes, res.OriginalBytes)
	c.stats.IncCounter(stats.MetricOutputBytes, res.EncodedBytes)
	c.stats.SetGauge(stats.MetricModelSymbols, int64(res.Symbols))
	c.stats.SetGauge(stats.MetricMaxCodeLength, int64(res.MaxCodeLength))
	c.stats.ObserveHistogram(stats.MetricEncodeSeconds, res.Elapsed.Seconds())

	c.logger.Debug("encoded",
		zap.Int64("originalBytes", res.OriginalBytes),
		zap.Int64("encodedBytes", res.EncodedBytes),
		zap.Int("symbols", res.Symbols),
		zap.Int("maxCodeLength", res.MaxCodeLength),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (c *Compressor) runEncode(ctx context.Context, open func() (io.ReadCloser, error), create func() (io.Writer, error)) (*Result, error) {
	r, err := open()
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	f, err := freq.Count(ctxReader{ctx, r})
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("counting frequencies: %w", err)
	}

	res := &Result{}
	if f.Len() == 0 {
		if _, err := create(); err != nil {
			return nil, fmt.Errorf("creating output: %w", err)
		}
		return res, nil
	}

	t, err := huffman.Assign(f)
	if err != nil {
		return nil, fmt.Errorf("assigning codes: %w", err)
	}
	c.logger.Debug("code table built",
		zap.Int("symbols", t.Len()),
		zap.Uint8("maxLength", t.MaxLength()),
		zap.Uint64("payloadBits", t.EncodedBits()),
	)

	w, err := create()
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	bw := bufio.NewWriter(w)
	if err := model.WriteHeader(bw, t); err != nil {
		return nil, err
	}

	r, err = open()
	if err != nil {
		return nil, fmt.Errorf("reopening input: %w", err)
	}
	defer r.Close()

	st, err := bitstream.NewEncoder(bw, t).Encode(ctxReader{ctx, r})
	if err != nil {
		return nil, err
	}

	res.OriginalBytes = st.Symbols
	res.HeaderBytes = headerSize(t)
	res.EncodedBytes = res.HeaderBytes + st.BodyBytes
	res.Symbols = t.Len()
	res.MaxCodeLength = int(t.MaxLength())
	res.PayloadBits = st.Bits
	return res, nil
}

func (c *Compressor) decode(ctx context.Context, src io.Reader, dst io.Writer) (*Result, error) {
	br := model.NewReader(ctxReader{ctx, src})
	t, err := model.ReadHeader(br)
	if errors.Is(err, model.ErrEmptyStream) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	st, err := bitstream.NewDecoder(br, t).Decode(dst)
	if err != nil {
		return nil, err
	}

	res := &Result{
		OriginalBytes: st.Symbols,
		HeaderBytes:   headerSize(t),
		Symbols:       t.Len(),
		MaxCodeLength: int(t.MaxLength()),
		PayloadBits:   st.Bits,
	}
	res.EncodedBytes = res.HeaderBytes + st.BodyBytes
	return res, nil
}

func headerSize(t *model.Table) int64 {
	return 2 + int64(t.Len())*int64(t.MaxLenEncode()+2)
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
