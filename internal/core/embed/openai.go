package embed

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIConfig configures an OpenAI compatible /embeddings endpoint (OpenAI, Ollama, vLLM)
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dims       int // requested output width, 0 leaves it to the model
	Timeout    time.Duration
	MaxRetries int
}

// OpenAI calls a remote embeddings API, one request per batch
// empty texts are not sent, the API rejects them, they come back as zero vectors
type OpenAI struct {
	client openai.Client
	model  string
	reqDim int
	dims   atomic.Int64
}

// NewOpenAI builds a remote embedder, Model is required
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("embed: openai provider requires a model")
	}
	opts := []option.RequestOption{option.WithMaxRetries(cfg.MaxRetries)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// local servers such as ollama ignore the key but the client still sends one
		opts = append(opts, option.WithAPIKey("unused"))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	e := &OpenAI{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		reqDim: cfg.Dims,
	}
	if cfg.Dims > 0 {
		e.dims.Store(int64(cfg.Dims))
	}
	return e, nil
}

// Embed implements Embedder
func (e *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	var (
		send []string
		at   []int
	)
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		send = append(send, t)
		at = append(at, i)
	}

	vecs := make([][]float32, len(texts))
	width := e.Dims()
	if len(send) > 0 {
		got, err := e.request(ctx, send)
		if err != nil {
			return nil, err
		}
		for j, i := range at {
			vecs[i] = got[j]
		}
		width = len(got[0])
	}
	for i := range vecs {
		if vecs[i] == nil {
			vecs[i] = make([]float32, width)
		}
	}
	return vecs, nil
}

// request embeds texts in a single API call, results ordered like texts
func (e *OpenAI) request(ctx context.Context, texts []string) ([][]float32, error) {
	params := openai.EmbeddingNewParams{
		Model:          openai.EmbeddingModel(e.model),
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}
	if e.reqDim > 0 {
		params.Dimensions = openai.Int(int64(e.reqDim))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("embed: %s request failed: %w", e.model, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embed: response has %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vecs := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, fmt.Errorf("embed: response index %d out of range", d.Index)
		}
		v := make([]float32, len(d.Embedding))
		for i, x := range d.Embedding {
			v[i] = float32(x)
		}
		vecs[d.Index] = v
	}
	if err := checkBatch(vecs, len(texts)); err != nil {
		return nil, err
	}
	e.dims.CompareAndSwap(0, int64(len(vecs[0])))
	return vecs, nil
}

// Dims implements Embedder
func (e *OpenAI) Dims() int { return int(e.dims.Load()) }

// Name implements Embedder
func (e *OpenAI) Name() string { return "openai:" + e.model }
