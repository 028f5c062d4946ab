package codec_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/codec"
	"github.com/ziphuff/zmh/internal/codec/gzipcodec"
	"github.com/ziphuff/zmh/internal/codec/noopcodec"
	"github.com/ziphuff/zmh/internal/codec/s2codec"
	"github.com/ziphuff/zmh/internal/codec/zmhcodec"
	"github.com/ziphuff/zmh/internal/codec/zstdcodec"
)

func allCodecs(t *testing.T) []codec.Codec {
	t.Helper()
	c, err := zmh.New()
	if err != nil {
		t.Fatalf("zmh.New() error = %v", err)
	}
	return []codec.Codec{
		noopcodec.New(),
		gzipcodec.New(),
		zstdcodec.New(),
		s2codec.New(),
		zmhcodec.New(c),
	}
}

func roundTrip(t *testing.T, c codec.Codec, original []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	writer, err := c.Writer(&compressed)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := writer.Write(original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	encoded := bytes.Clone(compressed.Bytes())

	reader, err := c.Reader(&compressed)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !bytes.Equal(decompressed, original) {
		t.Errorf("Round-trip failed: got %d bytes, want %d", len(decompressed), len(original))
	}
	return encoded
}

func TestCodecs_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty": {},
		"short": []byte("Hello, World! This is test data for compression."),
		"large": bytes.Repeat([]byte("ABCDEFGHIJ"), 10000),
	}

	for _, c := range allCodecs(t) {
		for name, data := range inputs {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				roundTrip(t, c, data)
			})
		}
	}
}

func TestCodecs_CompressRepetitiveData(t *testing.T) {
	original := []byte(strings.Repeat("aaaaaaab", 4096))

	for _, c := range allCodecs(t) {
		if c.Extension() == "" {
			continue
		}
		t.Run(c.Name(), func(t *testing.T) {
			compressed := roundTrip(t, c, original)
			if len(compressed) >= len(original) {
				t.Errorf("Expected compression, got %d bytes from %d bytes", len(compressed), len(original))
			}
		})
	}
}

func TestCodecs_Extension(t *testing.T) {
	want := map[string]string{
		"none": "",
		"gzip": "gz",
		"zstd": "zst",
		"s2":   "s2",
		"zmh":  "zmh",
	}
	for _, c := range allCodecs(t) {
		if got := c.Extension(); got != want[c.Name()] {
			t.Errorf("%s Extension() = %q, want %q", c.Name(), got, want[c.Name()])
		}
	}
}

func TestCodecs_Reader_InvalidData(t *testing.T) {
	for _, c := range allCodecs(t) {
		if c.Name() == "none" || c.Name() == "s2" {
			// none accepts anything; s2 reports errors on Read.
			continue
		}
		t.Run(c.Name(), func(t *testing.T) {
			r, err := c.Reader(bytes.NewReader([]byte{0x03, 0x01, 'x'}))
			if err == nil {
				_, err = io.ReadAll(r)
			}
			if err == nil {
				t.Error("expected error for invalid data, got nil")
			}
		})
	}
}
