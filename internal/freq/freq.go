// Package freq counts byte occurrences in first-seen order.
package freq

import (
	"fmt"
	"io"
)

// Frequencies maps each observed byte to its occurrence count.
// Iteration order is the order in which symbols were first seen.
type Frequencies struct {
	order  []byte
	counts [256]uint64
	total  uint64
}

// New returns an empty frequency mapping.
func New() *Frequencies {
	return &Frequencies{}
}

// Count scans r once and returns the resulting mapping.
// An empty reader yields an empty mapping.
func Count(r io.Reader) (*Frequencies, error) {
	f := New()
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		f.Add(buf[:n])
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return nil, fmt.Errorf("counting symbols: %w", err)
		}
	}
}

// Add counts every byte in p.
func (f *Frequencies) Add(p []byte) {
	for _, b := range p {
		if f.counts[b] == 0 {
			f.order = append(f.order, b)
		}
		f.counts[b]++
	}
	f.total += uint64(len(p))
}

// Len returns the number of distinct symbols.
func (f *Frequencies) Len() int {
	return len(f.order)
}

// Symbols returns the distinct symbols in first-seen order.
func (f *Frequencies) Symbols() []byte {
	out := make([]byte, len(f.order))
	copy(out, f.order)
	return out
}

// Count returns the number of times sym was seen.
func (f *Frequencies) Count(sym byte) uint64 {
	return f.counts[sym]
}

// Total returns the number of bytes scanned.
func (f *Frequencies) Total() uint64 {
	return f.total
}

// Probabilities returns the relative frequency of each symbol in first-seen order.
func (f *Frequencies) Probabilities() []float64 {
	p := make([]float64, len(f.order))
	if f.total == 0 {
		return p
	}
	for i, sym := range f.order {
		p[i] = float64(f.counts[sym]) / float64(f.total)
	}
	return p
}
