package embed

import (
	"fmt"
	"strings"
	"time"

	"ideaguard/internal/platform/config"
	"ideaguard/internal/platform/logger"
)

// provider names accepted by EMBED_PROVIDER
const (
	ProviderHash   = "hash"
	ProviderOnnx   = "onnx"
	ProviderOpenAI = "openai"
)

// Config selects and configures an embedding provider
type Config struct {
	Provider string

	// onnx
	OrtLib        string
	ModelPath     string
	TokenizerPath string
	MaxSeqLen     int

	// openai compatible
	APIBase    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int

	Dims     int
	CacheTTL time.Duration // 0 disables the cache
}

// FromConfig reads EMBED_* values from process config/env
func FromConfig(cfg config.Conf) Config {
	ec := cfg.Prefix("EMBED_")
	return Config{
		Provider:      ec.MayEnum("PROVIDER", ProviderHash, ProviderHash, ProviderOnnx, ProviderOpenAI),
		OrtLib:        ec.MayString("ORT_LIB", ""),
		ModelPath:     ec.MayString("MODEL_PATH", ""),
		TokenizerPath: ec.MayString("TOKENIZER_PATH", ""),
		MaxSeqLen:     ec.MayInt("MAX_SEQ_LEN", DefaultMaxSeqLen),
		APIBase:       ec.MayString("API_BASE", ""),
		APIKey:        ec.MayString("API_KEY", ""),
		Model:         ec.MayString("MODEL", "all-minilm"),
		Timeout:       ec.MayDuration("TIMEOUT", 20*time.Second),
		MaxRetries:    ec.MayInt("MAX_RETRIES", 2),
		Dims:          ec.MayInt("DIMS", 0),
		CacheTTL:      ec.MayDuration("CACHE_TTL", 0),
	}
}

// New builds the configured embedder, wrapped in a cache when CacheTTL is set
func New(cfg Config) (Embedder, error) {
	var (
		e   Embedder
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderHash:
		e = NewHash(cfg.Dims)
	case ProviderOnnx:
		e, err = NewOnnx(OnnxConfig{
			LibraryPath:   cfg.OrtLib,
			ModelPath:     cfg.ModelPath,
			TokenizerPath: cfg.TokenizerPath,
			MaxSeqLen:     cfg.MaxSeqLen,
			Dims:          cfg.Dims,
		})
	case ProviderOpenAI:
		e, err = NewOpenAI(OpenAIConfig{
			BaseURL:    cfg.APIBase,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dims:       cfg.Dims,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		})
	default:
		return nil, fmt.Errorf("embed: unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheTTL > 0 {
		e = NewCached(e, cfg.CacheTTL)
	}
	logger.Named("embed").Info().
		Str("provider", e.Name()).
		Int("dims", e.Dims()).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("embedder ready")
	return e, nil
}
