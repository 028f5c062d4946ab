package zmh

import "time"

// Result describes one encode or decode run.
type Result struct {
	// OriginalBytes is the size of the unencoded data.
	OriginalBytes int64

	// EncodedBytes is the size of the encoded data, header included.
	EncodedBytes int64

	// HeaderBytes is the size of the serialized code table.
	HeaderBytes int64

	// Symbols is the number of distinct byte values in the table.
	Symbols int

	// MaxCodeLength is the longest code in bits.
	MaxCodeLength int

	// PayloadBits is the number of significant code bits in the body.
	PayloadBits uint64

	Elapsed time.Duration
}

// Ratio returns EncodedBytes / OriginalBytes, or 0 for empty input.
func (r *Result) Ratio() float64 {
	if r.OriginalBytes == 0 {
		return 0
	}
	return float64(r.EncodedBytes) / float64(r.OriginalBytes)
}

// BitsPerSymbol returns the average code length over the original bytes.
func (r *Result) BitsPerSymbol() float64 {
	if r.OriginalBytes == 0 {
		return 0
	}
	return float64(r.PayloadBits) / float64(r.OriginalBytes)
}

// Savings returns the fraction of space saved, negative when the encoded
// form is larger.
func (r *Result) Savings() float64 {
	if r.OriginalBytes == 0 {
		return 0
	}
	return 1 - r.Ratio()
}
