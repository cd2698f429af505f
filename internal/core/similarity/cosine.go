// Package similarity scores embedding vectors and buckets the result into risk levels
package similarity

import (
	"errors"
	"math"
)

// ErrNoCandidates is returned when Score is called without anything to compare against
// callers are expected to short circuit before reaching it
var ErrNoCandidates = errors.New("similarity: no candidate vectors")

// Cosine returns dot(a,b)/(|a||b|)
// degenerate inputs (length mismatch, empty, or a zero norm) score 0
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		af, bf := float64(a[i]), float64(b[i])
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0
	}
	// one sqrt keeps identical vectors at exactly 1
	return dot / math.Sqrt(na*nb)
}

// Max returns the highest cosine similarity between v and any candidate
func Max(v []float32, candidates [][]float32) (float64, error) {
	if len(candidates) == 0 {
		return 0, ErrNoCandidates
	}
	best := math.Inf(-1)
	for _, c := range candidates {
		if s := Cosine(v, c); s > best {
			best = s
		}
	}
	return best, nil
}

// Score scales the best match to an integer percentage
// the product is truncated toward zero, then clamped into [0,100]
func Score(v []float32, candidates [][]float32) (int, error) {
	best, err := Max(v, candidates)
	if err != nil {
		return 0, err
	}
	return Percent(best), nil
}

// Percent converts a similarity in [-1,1] to the reported integer score
func Percent(sim float64) int {
	if math.IsNaN(sim) {
		return 0
	}
	p := int(math.Trunc(sim * 100))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
