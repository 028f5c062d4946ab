// Package codec defines a common shape for byte-stream compressors so the
// zmh format can be compared against general-purpose ones.
package codec

import "io"

// Codec provides compression and decompression functionality.
type Codec interface {
	// Name identifies the codec in reports.
	Name() string
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it. Output is complete
	// only after Close.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}
