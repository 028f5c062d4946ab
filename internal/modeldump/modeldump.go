// Package modeldump renders a code table for people and for other tools.
package modeldump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ziphuff/zmh/internal/model"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("modeldump: unknown format")

// Format names an output encoding.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatCBOR, FormatMsgpack}

// ParseFormat validates s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Model is the serializable form of a table.
type Model struct {
	Symbols   int     `json:"symbols" cbor:"symbols" msgpack:"symbols"`
	CodeWidth int     `json:"codeWidth" cbor:"codeWidth" msgpack:"codeWidth"`
	MaxLength int     `json:"maxLength" cbor:"maxLength" msgpack:"maxLength"`
	Entries   []Entry `json:"entries" cbor:"entries" msgpack:"entries"`
}

// Entry is one symbol's code.
type Entry struct {
	Symbol uint8  `json:"symbol" cbor:"symbol" msgpack:"symbol"`
	Code   uint64 `json:"code" cbor:"code" msgpack:"code"`
	Length uint8  `json:"length" cbor:"length" msgpack:"length"`
	Bits   string `json:"bits" cbor:"bits" msgpack:"bits"`
	Count  uint64 `json:"count,omitempty" cbor:"count,omitempty" msgpack:"count,omitempty"`
}

// FromTable converts t, keeping its entry order.
func FromTable(t *model.Table) Model {
	m := Model{
		Symbols:   t.Len(),
		CodeWidth: t.MaxLenEncode(),
		MaxLength: int(t.MaxLength()),
		Entries:   make([]Entry, 0, t.Len()),
	}
	for _, e := range t.Entries() {
		m.Entries = append(m.Entries, Entry{
			Symbol: e.Symbol,
			Code:   e.Code,
			Length: e.Length,
			Bits:   e.Bits(),
			Count:  e.Count,
		})
	}
	return m
}

// Table rebuilds and validates the table described by m.
func (m Model) Table() (*model.Table, error) {
	t := model.NewTable()
	for _, e := range m.Entries {
		if err := t.Add(model.Entry{Symbol: e.Symbol, Code: e.Code, Length: e.Length, Count: e.Count}); err != nil {
			return nil, err
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

var cborEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Write renders t to w in format f.
func Write(w io.Writer, t *model.Table, f Format) error {
	m := FromTable(t)
	switch f {
	case FormatText:
		return writeText(w, m)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatCBOR:
		return cborEnc.NewEncoder(w).Encode(m)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Read parses a dump written by Write. Text dumps cannot be read back.
func Read(r io.Reader, f Format) (Model, error) {
	var m Model
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&m)
	case FormatCBOR:
		err = cbor.NewDecoder(r).Decode(&m)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&m)
	default:
		return m, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return m, fmt.Errorf("decoding %s dump: %w", f, err)
	}
	return m, nil
}

func writeText(w io.Writer, m Model) error {
	fmt.Fprintf(w, "symbols: %d  code width: %d bytes  max length: %d bits\n", m.Symbols, m.CodeWidth, m.MaxLength)
	if len(m.Entries) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tCHAR\tLENGTH\tCODE")
	for _, e := range m.Entries {
		fmt.Fprintf(tw, "0x%02x\t%s\t%d\t%s\n", e.Symbol, printable(e.Symbol), e.Length, e.Bits)
	}
	return tw.Flush()
}

func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	q := strconv.QuoteRuneToASCII(rune(b))
	return q[1 : len(q)-1]
}
