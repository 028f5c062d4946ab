package model

import (
	"errors"
	"testing"
)

func TestTable_Add_Duplicate(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Add(Entry{Symbol: 'x', Length: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := tbl.Add(Entry{Symbol: 'x', Code: 1, Length: 1}); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("Add() error = %v, want ErrDuplicateSymbol", err)
	}
}

func TestTable_MaxLenEncode(t *testing.T) {
	tests := []struct {
		name    string
		lengths []uint8
		want    int
	}{
		{"empty", nil, 0},
		{"one bit", []uint8{1}, 1},
		{"eight bits", []uint8{8, 3}, 1},
		{"nine bits", []uint8{2, 9}, 2},
		{"sixty four bits", []uint8{64}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable()
			for i, l := range tt.lengths {
				tbl.Add(Entry{Symbol: byte(i), Length: l})
			}
			if got := tbl.MaxLenEncode(); got != tt.want {
				t.Errorf("MaxLenEncode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTable_Lookup(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Entry{Symbol: 0, Code: 1, Length: 1, Count: 7})

	e, ok := tbl.Lookup(0)
	if !ok || e.Count != 7 {
		t.Errorf("Lookup(0) = %+v, %v; want count 7", e, ok)
	}
	if _, ok := tbl.Lookup(1); ok {
		t.Error("Lookup(1) should report missing symbol")
	}
}

func TestTable_EncodedBits(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Entry{Symbol: 'a', Code: 0, Length: 1, Count: 90})
	tbl.Add(Entry{Symbol: 'b', Code: 2, Length: 2, Count: 5})
	tbl.Add(Entry{Symbol: 'c', Code: 3, Length: 2, Count: 5})

	if got := tbl.EncodedBits(); got != 110 {
		t.Errorf("EncodedBits() = %d, want 110", got)
	}
}

func TestTable_Validate(t *testing.T) {
	ok := NewTable()
	ok.Add(Entry{Symbol: 'a', Code: 0b0, Length: 1})
	ok.Add(Entry{Symbol: 'b', Code: 0b10, Length: 2})
	ok.Add(Entry{Symbol: 'c', Code: 0b11, Length: 2})
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := NewTable()
	bad.Add(Entry{Symbol: 'a', Code: 0b1, Length: 1})
	bad.Add(Entry{Symbol: 'b', Code: 0b10, Length: 2})
	if err := bad.Validate(); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Validate() error = %v, want ErrInvalidModel", err)
	}
}

func TestEntry_Bits(t *testing.T) {
	tests := []struct {
		e    Entry
		want string
	}{
		{Entry{Code: 0, Length: 1}, "0"},
		{Entry{Code: 1, Length: 3}, "001"},
		{Entry{Code: 0b1011, Length: 4}, "1011"},
	}
	for _, tt := range tests {
		if got := tt.e.Bits(); got != tt.want {
			t.Errorf("Bits() = %q, want %q", got, tt.want)
		}
	}
}
