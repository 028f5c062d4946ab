package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// WriteHeader serializes t to w.
func WriteHeader(w io.Writer, t *Table) error {
	if t.Len() > 256 {
		return fmt.Errorf("%w: %d symbols", ErrInvalidModel, t.Len())
	}
	width := t.MaxLenEncode()

	buf := make([]byte, 0, 2+t.Len()*(width+2))
	// 256 symbols wraps to 0; the non-zero width tells it apart from an empty table.
	buf = append(buf, byte(t.Len()), byte(width))
	for _, e := range t.entries {
		buf = append(buf, e.Symbol)
		for i := width - 1; i >= 0; i-- {
			buf = append(buf, byte(e.Code>>(8*uint(i))))
		}
		buf = append(buf, e.Length)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// ReadHeader reads a table from r. It consumes exactly the header bytes,
// so r is positioned at the start of the body on success.
//
// ErrEmptyStream is returned if r holds no bytes at all.
func ReadHeader(r io.ByteReader) (*Table, error) {
	count, err := r.ReadByte()
	if err == io.EOF {
		return nil, ErrEmptyStream
	}
	if err != nil {
		return nil, fmt.Errorf("reading symbol count: %w", err)
	}

	width, err := r.ReadByte()
	if err != nil {
		return nil, truncated(err, "missing code width")
	}

	n := int(count)
	switch {
	case count == 0 && width == 0:
		_, err := r.ReadByte()
		if err == io.EOF {
			return NewTable(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty model followed by data", ErrInvalidModel)
	case count == 0:
		n = 256
	case width == 0:
		return nil, fmt.Errorf("%w: %d symbols with zero code width", ErrInvalidModel, count)
	}
	if width > MaxCodeLength/8 {
		return nil, fmt.Errorf("%w: code width %d bytes", ErrInvalidModel, width)
	}

	t := NewTable()
	rec := make([]byte, int(width)+2)
	for i := 0; i < n; i++ {
		for j := range rec {
			if rec[j], err = r.ReadByte(); err != nil {
				return nil, truncated(err, fmt.Sprintf("record %d of %d", i+1, n))
			}
		}

		e := Entry{Symbol: rec[0], Length: rec[len(rec)-1]}
		for _, b := range rec[1 : len(rec)-1] {
			e.Code = e.Code<<8 | uint64(b)
		}
		if e.Length == 0 || int(e.Length) > 8*int(width) {
			return nil, fmt.Errorf("%w: symbol 0x%02x has length %d", ErrInvalidModel, e.Symbol, e.Length)
		}
		if e.Length < MaxCodeLength && e.Code>>e.Length != 0 {
			return nil, fmt.Errorf("%w: code of 0x%02x exceeds %d bits", ErrInvalidModel, e.Symbol, e.Length)
		}
		if err := t.Add(e); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// NewReader wraps r so it can be passed to ReadHeader and then read for the body.
func NewReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

func truncated(err error, what string) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s", ErrTruncatedModel, what)
	}
	return fmt.Errorf("reading header: %w", err)
}
