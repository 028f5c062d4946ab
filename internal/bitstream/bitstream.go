// Package bitstream packs symbols into the encoded body and unpacks them again.
//
// The body is the concatenation of every input symbol's code, most significant
// bit first, packed into bytes. When the bit count is not a multiple of eight
// the final byte carries the leftover bits in its low positions, and a trailer
// byte records how many of them are significant (0 when aligned).
package bitstream

import "errors"

var (
	// ErrCorruptBitstream indicates body bits that match no code.
	ErrCorruptBitstream = errors.New("bitstream: corrupt bitstream")

	// ErrSourceChanged indicates the input differs from the one the table was built from.
	ErrSourceChanged = errors.New("bitstream: source changed between passes")

	// ErrUnknownSymbol indicates an input byte with no code in the table.
	ErrUnknownSymbol = errors.New("bitstream: symbol not in table")
)

// Stats describes one encode or decode run.
type Stats struct {
	// Symbols is the number of original bytes read or written.
	Symbols int64

	// BodyBytes is the size of the body including the trailer byte.
	BodyBytes int64

	// Bits is the number of significant code bits, padding excluded.
	Bits uint64
}
