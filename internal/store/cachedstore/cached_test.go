package cachedstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ziphuff/zmh/internal/store"
	"github.com/ziphuff/zmh/internal/store/memstore"
)

// fakeBackend is a simple in-memory backend for testing.
type fakeBackend struct {
	data   map[string][]byte
	hits   int64
	misses int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: make(map[string][]byte)}
}

func (b *fakeBackend) Get(key string) ([]byte, bool) {
	if data, ok := b.data[key]; ok {
		b.hits++
		return data, true
	}
	b.misses++
	return nil, false
}

func (b *fakeBackend) Set(key string, data []byte) {
	b.data[key] = data
}

func (b *fakeBackend) Remove(key string) {
	delete(b.data, key)
}

func (b *fakeBackend) Stats() Stats {
	return Stats{Hits: b.hits, Misses: b.misses, Size: len(b.data)}
}

func readAll(t *testing.T, s store.Store, key string) string {
	t.Helper()
	r, err := s.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", key, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return string(data)
}

func TestStore_SecondOpenHitsCache(t *testing.T) {
	mem := memstore.New()
	mem.Put("input.bin", []byte("payload"))

	s := New(mem, newFakeBackend())

	if got := readAll(t, s, "input.bin"); got != "payload" {
		t.Errorf("first Open() = %q, want %q", got, "payload")
	}
	if got := readAll(t, s, "input.bin"); got != "payload" {
		t.Errorf("second Open() = %q, want %q", got, "payload")
	}

	if n := mem.Opens("input.bin"); n != 1 {
		t.Errorf("underlying opened %d times, want 1", n)
	}
	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", st)
	}
}

func TestStore_CreateInvalidates(t *testing.T) {
	mem := memstore.New()
	mem.Put("k", []byte("old"))
	s := New(mem, newFakeBackend())

	readAll(t, s, "k")

	w, err := s.Create(context.Background(), "k")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	w.Write([]byte("new"))
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := readAll(t, s, "k"); got != "new" {
		t.Errorf("Open() after Create = %q, want %q", got, "new")
	}
}

func TestStore_NotFound(t *testing.T) {
	s := New(memstore.New(), newFakeBackend())

	_, err := s.Open(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int64
		misses   int64
		expected float64
	}{
		{"no requests", 0, 0, 0},
		{"all hits", 10, 0, 100},
		{"all misses", 0, 10, 0},
		{"50% hit rate", 5, 5, 50},
		{"75% hit rate", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Hits: tt.hits, Misses: tt.misses}
			if got := s.HitRate(); got != tt.expected {
				t.Errorf("HitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}
