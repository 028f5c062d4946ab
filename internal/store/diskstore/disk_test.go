package diskstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ziphuff/zmh/internal/store"
)

func TestStore_OpenCreate(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	w, err := s.Create(ctx, "report.txt.zmh")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := w.Write([]byte("encoded")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "report.txt.zmh")); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	r, err := s.Open(ctx, "report.txt.zmh")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != "encoded" {
		t.Errorf("Open() = %q, want %q", got, "encoded")
	}
}

func TestStore_OpenNotFound(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = s.Open(context.Background(), "missing.bin")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestStore_RejectsEscapingKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, key := range []string{"", ".", "..", "../outside", "/etc/passwd"} {
		if _, err := s.Open(context.Background(), key); err == nil {
			t.Errorf("Open(%q) should fail", key)
		}
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Create(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Create() error = %v, want context.Canceled", err)
	}
}

func TestNew_InvalidPath(t *testing.T) {
	if _, err := New("/nonexistent/path"); err == nil {
		t.Error("New() with invalid path should return error")
	}
}

func TestNew_NotDirectory(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "test")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := New(f.Name()); err == nil {
		t.Error("New() with file (not directory) should return error")
	}
}
