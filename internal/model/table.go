// Package model holds the code table and its binary header layout.
//
// Header layout:
//
//	[count: 1 byte]           0 means 256 when max_len_encode is non-zero
//	[max_len_encode: 1 byte]  bytes per stored code
//	count × [symbol: 1 | code: max_len_encode, big-endian | length: 1]
package model

import (
	"errors"
	"fmt"
)

// MaxCodeLength is the longest code a Table can carry.
const MaxCodeLength = 64

// Sentinel errors for header validation.
var (
	// ErrEmptyStream indicates the encoded stream holds no bytes at all.
	ErrEmptyStream = errors.New("model: empty stream")

	// ErrTruncatedModel indicates the header ended before all declared records were read.
	ErrTruncatedModel = errors.New("model: truncated model")

	// ErrDuplicateSymbol indicates a symbol appears in more than one header record.
	ErrDuplicateSymbol = errors.New("model: duplicate symbol")

	// ErrInvalidModel indicates header fields that contradict each other.
	ErrInvalidModel = errors.New("model: invalid model")
)

// Entry is the code assigned to one symbol.
type Entry struct {
	Symbol byte
	Code   uint64
	Length uint8

	// Count is the number of occurrences in the source.
	// Zero for tables read back from a header.
	Count uint64
}

// Bits renders the code as a string of '0' and '1' of Length characters.
func (e Entry) Bits() string {
	b := make([]byte, e.Length)
	for i := range b {
		if e.Code>>(uint(e.Length)-1-uint(i))&1 == 1 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Table is an ordered code table. Entry order is significant: it is the
// order the symbols were first seen and the order records are serialized.
type Table struct {
	entries []Entry
	index   [256]int // position+1 in entries, 0 when absent
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add appends an entry. It returns ErrDuplicateSymbol if the symbol is already present.
func (t *Table) Add(e Entry) error {
	if t.index[e.Symbol] != 0 {
		return fmt.Errorf("%w: 0x%02x", ErrDuplicateSymbol, e.Symbol)
	}
	t.entries = append(t.entries, e)
	t.index[e.Symbol] = len(t.entries)
	return nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the entry for sym.
func (t *Table) Lookup(sym byte) (Entry, bool) {
	i := t.index[sym]
	if i == 0 {
		return Entry{}, false
	}
	return t.entries[i-1], true
}

// MaxLength returns the longest code length in bits.
func (t *Table) MaxLength() uint8 {
	var m uint8
	for _, e := range t.entries {
		if e.Length > m {
			m = e.Length
		}
	}
	return m
}

// MaxLenEncode returns the number of whole bytes needed to store the longest code.
func (t *Table) MaxLenEncode() int {
	return (int(t.MaxLength()) + 7) / 8
}

// EncodedBits returns the body length in bits: the sum of count×length.
func (t *Table) EncodedBits() uint64 {
	var n uint64
	for _, e := range t.entries {
		n += e.Count * uint64(e.Length)
	}
	return n
}

// Validate reports ErrInvalidModel if any code is a prefix of another.
func (t *Table) Validate() error {
	for i, a := range t.entries {
		if a.Length == 0 || a.Length > MaxCodeLength {
			return fmt.Errorf("%w: symbol 0x%02x has length %d", ErrInvalidModel, a.Symbol, a.Length)
		}
		for _, b := range t.entries[i+1:] {
			short, long := a, b
			if short.Length > long.Length {
				short, long = long, short
			}
			if long.Code>>(long.Length-short.Length) == short.Code {
				return fmt.Errorf("%w: code of 0x%02x is a prefix of 0x%02x",
					ErrInvalidModel, short.Symbol, long.Symbol)
			}
		}
	}
	return nil
}
