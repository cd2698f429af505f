package embed

import (
	"context"
	"hash/fnv"
	"strings"
)

// DefaultHashDims is the width used when none is configured
const DefaultHashDims = 512

// Hash is an offline feature hashing embedder
// word unigrams carry most of the weight, character trigrams add tolerance to
// spelling variants. It has no notion of synonyms, it exists so the service and
// its tests run without a model on disk
type Hash struct {
	dims int
}

// NewHash returns a hashing embedder producing dims wide vectors
func NewHash(dims int) *Hash {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &Hash{dims: dims}
}

// Embed implements Embedder
func (h *Hash) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.vector(t)
	}
	return out, nil
}

// Dims implements Embedder
func (h *Hash) Dims() int { return h.dims }

// Name implements Embedder
func (h *Hash) Name() string { return "hash" }

func (h *Hash) vector(text string) []float32 {
	v := make([]float32, h.dims)
	for _, w := range strings.Fields(text) {
		v[h.bucket("w:"+w)] += 1
		r := []rune(" " + w + " ")
		for j := 0; j+3 <= len(r); j++ {
			v[h.bucket("t:"+string(r[j:j+3]))] += 0.25
		}
	}
	l2Normalize(v)
	return v
}

func (h *Hash) bucket(feature string) int {
	f := fnv.New32a()
	_, _ = f.Write([]byte(feature))
	return int(f.Sum32() % uint32(h.dims))
}
