package bigcache

import "testing"

func TestStrategy_AddGetRemove(t *testing.T) {
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if _, ok := s.Get("a"); ok {
		t.Error("Get() should miss on empty cache")
	}

	s.Add("a", []byte("alpha"))
	got, ok := s.Get("a")
	if !ok || string(got) != "alpha" {
		t.Errorf("Get() = %q, %v; want %q, true", got, ok, "alpha")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	s.Remove("a")
	if _, ok := s.Get("a"); ok {
		t.Error("Get() should miss after Remove")
	}
}
