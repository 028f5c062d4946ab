package freq

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCount_FirstSeenOrder(t *testing.T) {
	f, err := Count(strings.NewReader("banana"))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}

	want := []byte("ban")
	if got := f.Symbols(); !bytes.Equal(got, want) {
		t.Errorf("Symbols() = %q, want %q", got, want)
	}

	tests := []struct {
		sym  byte
		want uint64
	}{
		{'b', 1},
		{'a', 3},
		{'n', 2},
		{'z', 0},
	}
	for _, tt := range tests {
		if got := f.Count(tt.sym); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.sym, got, tt.want)
		}
	}

	if f.Total() != 6 {
		t.Errorf("Total() = %d, want 6", f.Total())
	}
}

func TestCount_Empty(t *testing.T) {
	f, err := Count(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("Len() = %d, want 0", f.Len())
	}
	if f.Total() != 0 {
		t.Errorf("Total() = %d, want 0", f.Total())
	}
}

func TestCount_AllByteValues(t *testing.T) {
	data := make([]byte, 0, 512)
	for i := 255; i >= 0; i-- {
		data = append(data, byte(i), byte(i))
	}

	f, err := Count(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if f.Len() != 256 {
		t.Fatalf("Len() = %d, want 256", f.Len())
	}
	if f.Symbols()[0] != 255 || f.Symbols()[255] != 0 {
		t.Error("symbols not in first-seen order")
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestCount_ReadError(t *testing.T) {
	if _, err := Count(failingReader{}); err == nil {
		t.Error("Count() expected error from failing reader")
	}
}

func TestFrequencies_Probabilities(t *testing.T) {
	f := New()
	f.Add([]byte("aaab"))

	p := f.Probabilities()
	if len(p) != 2 {
		t.Fatalf("len(Probabilities()) = %d, want 2", len(p))
	}
	if p[0] != 0.75 || p[1] != 0.25 {
		t.Errorf("Probabilities() = %v, want [0.75 0.25]", p)
	}
}
