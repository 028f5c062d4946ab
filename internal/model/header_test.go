package model

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func mustTable(t *testing.T, entries ...Entry) *Table {
	t.Helper()
	tbl := NewTable()
	for _, e := range entries {
		if err := tbl.Add(e); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	return tbl
}

func TestWriteHeader_Layout(t *testing.T) {
	tbl := mustTable(t,
		Entry{Symbol: 'b', Code: 0b10, Length: 2},
		Entry{Symbol: 'a', Code: 0b0, Length: 1},
		Entry{Symbol: 'c', Code: 0b11, Length: 2},
	)

	var buf bytes.Buffer
	if err := WriteHeader(&buf, tbl); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}

	want := []byte{
		3, 1,
		'b', 0b10, 2,
		'a', 0b0, 1,
		'c', 0b11, 2,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WriteHeader() = %v, want %v", buf.Bytes(), want)
	}
}

func TestWriteHeader_WideCodes(t *testing.T) {
	tbl := mustTable(t,
		Entry{Symbol: 1, Code: 0x1ff, Length: 9},
		Entry{Symbol: 2, Code: 0, Length: 1},
	)

	var buf bytes.Buffer
	if err := WriteHeader(&buf, tbl); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}

	want := []byte{2, 2, 1, 0x01, 0xff, 9, 2, 0x00, 0x00, 1}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WriteHeader() = %v, want %v", buf.Bytes(), want)
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	tbl := mustTable(t,
		Entry{Symbol: 0x00, Code: 0b0, Length: 1},
		Entry{Symbol: 0xff, Code: 0b10, Length: 2},
		Entry{Symbol: 0x7f, Code: 0b11, Length: 2},
	)

	var buf bytes.Buffer
	if err := WriteHeader(&buf, tbl); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	buf.WriteString("body")

	r := NewReader(&buf)
	got, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	if got.Len() != tbl.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), tbl.Len())
	}
	for i, e := range got.Entries() {
		want := tbl.Entries()[i]
		if e.Symbol != want.Symbol || e.Code != want.Code || e.Length != want.Length {
			t.Errorf("entry %d = %+v, want %+v", i, e, want)
		}
	}

	rest, err := io.ReadAll(r)
	if err != nil || string(rest) != "body" {
		t.Errorf("body after header = %q, %v; want %q", rest, err, "body")
	}
}

func TestHeader_256Symbols(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < 256; i++ {
		if err := tbl.Add(Entry{Symbol: byte(i), Code: uint64(i), Length: 8}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	var buf bytes.Buffer
	if err := WriteHeader(&buf, tbl); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if buf.Bytes()[0] != 0 || buf.Bytes()[1] != 1 {
		t.Fatalf("header prefix = %v, want [0 1]", buf.Bytes()[:2])
	}

	got, err := ReadHeader(NewReader(&buf))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if got.Len() != 256 {
		t.Errorf("Len() = %d, want 256", got.Len())
	}
}

func TestReadHeader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty stream", nil, ErrEmptyStream},
		{"missing width", []byte{1}, ErrTruncatedModel},
		{"declared count exceeds records", []byte{2, 1, 'a', 0, 1}, ErrTruncatedModel},
		{"record cut short", []byte{1, 1, 'a', 0}, ErrTruncatedModel},
		{"duplicate symbol", []byte{2, 1, 'a', 0, 1, 'a', 1, 1}, ErrDuplicateSymbol},
		{"count without width", []byte{1, 0, 'a', 1}, ErrInvalidModel},
		{"empty marker followed by data", []byte{0, 0, 'x'}, ErrInvalidModel},
		{"zero length", []byte{1, 1, 'a', 0, 0}, ErrInvalidModel},
		{"length exceeds width", []byte{1, 1, 'a', 0, 9}, ErrInvalidModel},
		{"code exceeds length", []byte{1, 1, 'a', 2, 1}, ErrInvalidModel},
		{"width too large", []byte{1, 9}, ErrInvalidModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(NewReader(bytes.NewReader(tt.input)))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadHeader_EmptyMarker(t *testing.T) {
	tbl, err := ReadHeader(NewReader(bytes.NewReader([]byte{0, 0})))
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}
