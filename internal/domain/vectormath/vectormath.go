// Package vectormath provides similarity math over embedding vectors.
package vectormath

import (
	"fmt"
	"math"
)

// Cosine returns the cosine similarity dot(a,b)/(|a|*|b|) of two
// equal-length vectors. The result is in [-1, 1].
//
// Returns ErrLengthMismatch when the vectors differ in length and
// ErrZeroVector when either vector has zero magnitude, since the
// similarity is undefined there. A zero vector from the similarity
// service is a data fault and is never silently scored as zero.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	mag := math.Sqrt(magA) * math.Sqrt(magB)
	if mag == 0 {
		return 0, ErrZeroVector
	}
	return dot / mag, nil
}
