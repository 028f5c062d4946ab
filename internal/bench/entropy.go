package bench

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ziphuff/zmh/internal/freq"
)

// Entropy returns the Shannon entropy of the byte distribution in f, in
// bits per byte. An empty distribution has zero entropy.
func Entropy(f *freq.Frequencies) float64 {
	if f.Total() == 0 {
		return 0
	}
	// stat.Entropy works in nats.
	return stat.Entropy(f.Probabilities()) / math.Ln2
}
