package embed

import (
	"testing"
	"time"

	"ideaguard/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_Defaults(t *testing.T) {
	cfg := FromConfig(config.New().Prefix("EMBEDTEST_"))
	assert.Equal(t, ProviderHash, cfg.Provider)
	assert.Equal(t, DefaultMaxSeqLen, cfg.MaxSeqLen)
	assert.Zero(t, cfg.CacheTTL)
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("EMBED_PROVIDER", "OpenAI")
	t.Setenv("EMBED_MODEL", "nomic-embed-text")
	t.Setenv("EMBED_API_BASE", "http://localhost:11434/v1/")
	t.Setenv("EMBED_DIMS", "256")
	t.Setenv("EMBED_CACHE_TTL", "5m")

	cfg := FromConfig(config.New())
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Model)
	assert.Equal(t, "http://localhost:11434/v1/", cfg.APIBase)
	assert.Equal(t, 256, cfg.Dims)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestNew_Providers(t *testing.T) {
	e, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Hash{}, e)

	e, err = New(Config{Provider: ProviderHash, Dims: 16, CacheTTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, e)
	assert.Equal(t, 16, e.Dims())

	e, err = New(Config{Provider: ProviderOpenAI, Model: "m", APIBase: "http://127.0.0.1:1/"})
	require.NoError(t, err)
	assert.Equal(t, "openai:m", e.Name())

	_, err = New(Config{Provider: ProviderOnnx})
	assert.Error(t, err, "onnx without model paths must fail")

	_, err = New(Config{Provider: "word2vec"})
	assert.Error(t, err)
}
