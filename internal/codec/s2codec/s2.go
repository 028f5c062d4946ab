// Package s2codec provides an S2 (Snappy-compatible) compression codec.
package s2codec

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/ziphuff/zmh/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements S2 stream compression.
type Codec struct{}

// New returns a new S2 codec.
func New() *Codec {
	return &Codec{}
}

// Name returns "s2".
func (c *Codec) Name() string {
	return "s2"
}

// Reader wraps r to decompress an S2 stream.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

// Writer wraps w to compress data as an S2 stream.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}

// Extension returns "s2".
func (c *Codec) Extension() string {
	return "s2"
}
