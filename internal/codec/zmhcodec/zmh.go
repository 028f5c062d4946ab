// Package zmhcodec adapts the zmh compressor to the codec interface.
//
// The format needs the whole input before it can write anything, so the
// writer buffers in memory and encodes on Close, and the reader decodes
// the full stream up front.
package zmhcodec

import (
	"bytes"
	"context"
	"io"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zmh compression.
type Codec struct {
	c *zmh.Compressor
}

// New returns a codec backed by c.
func New(c *zmh.Compressor) *Codec {
	return &Codec{c: c}
}

// Name returns "zmh".
func (c *Codec) Name() string {
	return "zmh"
}

// Reader decodes all of r and returns a reader over the result.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	var out bytes.Buffer
	if _, err := c.c.Decode(context.Background(), r, &out); err != nil {
		return nil, err
	}
	return io.NopCloser(&out), nil
}

// Writer returns a writer that encodes everything written to it on Close.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return &writer{c: c.c, dst: w}, nil
}

// Extension returns "zmh".
func (c *Codec) Extension() string {
	return zmh.Suffix
}

type writer struct {
	bytes.Buffer
	c      *zmh.Compressor
	dst    io.Writer
	closed bool
}

func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.c.Encode(context.Background(), bytes.NewReader(w.Bytes()), w.dst)
	return err
}
