package bitstream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/ziphuff/zmh/internal/model"
)

// Encoder writes the body for one table.
type Encoder struct {
	w     *bufio.Writer
	table *model.Table
}

// NewEncoder returns an encoder writing to w. The table must carry the
// symbol counts of the input that will be passed to Encode.
func NewEncoder(w io.Writer, t *model.Table) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), table: t}
}

// Encode reads all of r and writes the packed body followed by the trailer byte.
func (e *Encoder) Encode(r io.Reader) (Stats, error) {
	var st Stats

	total := e.table.EncodedBits()
	tail := uint8(total % 8)
	boundary := total - uint64(tail)
	var pad uint8
	if tail != 0 {
		pad = 8 - tail
	}

	// The final partial byte is right-aligned, so its padding goes in
	// front of the last tail bits rather than after them.
	bw := bitio.NewWriter(e.w)
	var pos uint64
	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		for _, b := range buf[:n] {
			entry, ok := e.table.Lookup(b)
			if !ok {
				return st, fmt.Errorf("%w: 0x%02x", ErrUnknownSymbol, b)
			}

			end := pos + uint64(entry.Length)
			if end > total {
				return st, ErrSourceChanged
			}
			var err error
			if pad != 0 && pos <= boundary && boundary < end {
				err = writeSplit(bw, entry, uint8(boundary-pos), pad)
			} else {
				err = bw.WriteBits(entry.Code, entry.Length)
			}
			if err != nil {
				return st, fmt.Errorf("writing body: %w", err)
			}
			pos = end
		}
		st.Symbols += int64(n)

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return st, fmt.Errorf("reading input: %w", rerr)
		}
	}

	if pos != total {
		return st, ErrSourceChanged
	}

	if err := bw.Close(); err != nil {
		return st, fmt.Errorf("writing body: %w", err)
	}
	if err := e.w.WriteByte(tail); err != nil {
		return st, fmt.Errorf("writing trailer: %w", err)
	}
	if err := e.w.Flush(); err != nil {
		return st, fmt.Errorf("flushing body: %w", err)
	}

	st.BodyBytes = int64((total+uint64(pad))/8) + 1
	st.Bits = total
	return st, nil
}

// writeSplit writes the first hi bits of the code, the padding, then the rest.
func writeSplit(bw *bitio.Writer, e model.Entry, hi, pad uint8) error {
	lo := e.Length - hi
	if hi > 0 {
		if err := bw.WriteBits(e.Code>>lo, hi); err != nil {
			return err
		}
	}
	if err := bw.WriteBits(0, pad); err != nil {
		return err
	}
	return bw.WriteBits(e.Code&(1<<lo-1), lo)
}
