// Package embed turns normalized text into dense vectors
// every implementation embeds a whole batch per call and keeps output order aligned with input
package embed

import (
	"context"
	"fmt"
	"math"
)

// Embedder computes one vector per input text
// implementations must be safe for concurrent use
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dims is the vector width, 0 until known for remote providers
	Dims() int
	// Name identifies the provider and model, also used to key caches
	Name() string
}

// Closer is implemented by embedders holding native or network resources
type Closer interface {
	Close() error
}

// Close releases e if it holds resources
func Close(e Embedder) error {
	if c, ok := e.(Closer); ok {
		return c.Close()
	}
	return nil
}

// checkBatch verifies a provider returned one vector per text, all of one width
func checkBatch(vecs [][]float32, n int) error {
	if len(vecs) != n {
		return fmt.Errorf("embed: got %d vectors for %d inputs", len(vecs), n)
	}
	if n == 0 {
		return nil
	}
	dim := len(vecs[0])
	for i, v := range vecs {
		if v == nil {
			return fmt.Errorf("embed: missing vector at index %d", i)
		}
		if len(v) != dim {
			return fmt.Errorf("embed: vector %d has %d dims, want %d", i, len(v), dim)
		}
	}
	return nil
}

// l2Normalize scales v to unit length in place, zero vectors are left alone
func l2Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
