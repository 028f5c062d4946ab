package bitstream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/ziphuff/zmh/internal/model"
)

type codeKey struct {
	length uint8
	code   uint64
}

// Decoder reads the body for one table.
type Decoder struct {
	r      *bufio.Reader
	table  *model.Table
	codes  map[codeKey]byte
	maxLen uint8
}

// NewDecoder returns a decoder reading the body from r. Pass the reader
// that model.ReadHeader consumed so no buffered body bytes are lost.
func NewDecoder(r *bufio.Reader, t *model.Table) *Decoder {
	codes := make(map[codeKey]byte, t.Len())
	for _, e := range t.Entries() {
		k := codeKey{length: e.Length, code: e.Code}
		if _, ok := codes[k]; !ok {
			codes[k] = e.Symbol
		}
	}
	return &Decoder{r: r, table: t, codes: codes, maxLen: t.MaxLength()}
}

// Decode writes the original bytes to w. An empty table decodes to nothing.
func (d *Decoder) Decode(w io.Writer) (Stats, error) {
	var st Stats
	if d.table.Len() == 0 {
		return st, nil
	}

	out := bufio.NewWriter(w)
	br := bitio.NewReader(d.r)

	var code uint64
	var length uint8
	feed := func(bit bool) error {
		code <<= 1
		if bit {
			code |= 1
		}
		length++
		if sym, ok := d.codes[codeKey{length: length, code: code}]; ok {
			if err := out.WriteByte(sym); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			st.Symbols++
			st.Bits += uint64(length)
			code, length = 0, 0
			return nil
		}
		if length >= d.maxLen {
			return fmt.Errorf("%w: no code matches %d bits", ErrCorruptBitstream, length)
		}
		return nil
	}

	for {
		// bitio only pulls a byte from d.r once the previous one is used up,
		// so at this point p[0] is the next data byte.
		p, err := d.r.Peek(3)
		if err != nil && err != io.EOF {
			return st, fmt.Errorf("reading body: %w", err)
		}

		switch len(p) {
		case 0, 1:
			return st, fmt.Errorf("%w: missing body", ErrCorruptBitstream)

		case 2:
			tail := p[1]
			if tail > 7 {
				return st, fmt.Errorf("%w: trailer %d out of range", ErrCorruptBitstream, tail)
			}
			width := uint8(8)
			if tail != 0 {
				if _, err := br.ReadBits(8 - tail); err != nil {
					return st, fmt.Errorf("reading body: %w", err)
				}
				width = tail
			}
			for i := uint8(0); i < width; i++ {
				bit, err := br.ReadBool()
				if err != nil {
					return st, fmt.Errorf("reading body: %w", err)
				}
				if err := feed(bit); err != nil {
					return st, err
				}
			}
			if _, err := d.r.Discard(1); err != nil {
				return st, fmt.Errorf("reading trailer: %w", err)
			}
			st.BodyBytes += 2

			if length != 0 {
				return st, fmt.Errorf("%w: %d undecoded bits", ErrCorruptBitstream, length)
			}
			if err := out.Flush(); err != nil {
				return st, fmt.Errorf("flushing output: %w", err)
			}
			return st, nil

		default:
			for i := 0; i < 8; i++ {
				bit, err := br.ReadBool()
				if err != nil {
					return st, fmt.Errorf("reading body: %w", err)
				}
				if err := feed(bit); err != nil {
					return st, err
				}
			}
			st.BodyBytes++
		}
	}
}
