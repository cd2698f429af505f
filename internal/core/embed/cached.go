package embed

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached memoizes vectors per input text
// only a batch made entirely of hits is served locally, any miss sends the whole
// batch to the inner embedder so every vector of a request comes from one call
type Cached struct {
	inner Embedder
	store *gocache.Cache
}

// NewCached wraps inner with a ttl bounded cache
func NewCached(inner Embedder, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) key(text string) string {
	sum := sha1.Sum([]byte(c.inner.Name() + "|" + text))
	return hex.EncodeToString(sum[:])
}

// Embed implements Embedder
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if out, ok := c.lookup(texts); ok {
		return out, nil
	}
	vecs, err := c.inner.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if err := checkBatch(vecs, len(texts)); err != nil {
		return nil, err
	}
	for i, t := range texts {
		c.store.SetDefault(c.key(t), vecs[i])
	}
	return vecs, nil
}

// lookup reports a full hit, partial hits are discarded
func (c *Cached) lookup(texts []string) ([][]float32, bool) {
	if len(texts) == 0 {
		return nil, false
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := c.store.Get(c.key(t))
		if !ok {
			return nil, false
		}
		out[i] = v.([]float32)
	}
	return out, true
}

// Dims implements Embedder
func (c *Cached) Dims() int { return c.inner.Dims() }

// Name implements Embedder
func (c *Cached) Name() string { return c.inner.Name() }

// Len reports the number of cached vectors
func (c *Cached) Len() int { return c.store.ItemCount() }

// Close releases the inner embedder
func (c *Cached) Close() error { return Close(c.inner) }
