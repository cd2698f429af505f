// Package service contains the analyze workflow
package service

import (
	"context"
	"time"

	"ideaguard/internal/core/embed"
	"ideaguard/internal/core/normalize"
	"ideaguard/internal/core/similarity"
	perr "ideaguard/internal/platform/errors"
	"ideaguard/internal/platform/logger"
	"ideaguard/internal/services/analyze/corpus"
	"ideaguard/internal/services/analyze/domain"
)

// first idea verdict, returned without embedding
const (
	firstIdeaScore   = 0
	firstIdeaMessage = "First idea"
)

// Service defines the service contract for analyze
type Service interface{ domain.ServicePort }

// Options tunes the workflow
type Options struct {
	// EmbedTimeout bounds the embedder call, 0 leaves only the request context
	EmbedTimeout time.Duration
}

// Svc implements the Service interface
type Svc struct {
	norm   *normalize.Normalizer
	emb    embed.Embedder
	corpus *corpus.Accumulator
	opts   Options
}

// New creates a new analyze service
func New(emb embed.Embedder, acc *corpus.Accumulator, opts Options) *Svc {
	if emb == nil {
		panic("analyze.Service requires a non nil Embedder")
	}
	if acc == nil {
		panic("analyze.Service requires a non nil Accumulator")
	}
	return &Svc{norm: normalize.New(), emb: emb, corpus: acc, opts: opts}
}

// Analyze scores a submission against its comparison set
// with no candidates the raw text is recorded and the first idea verdict is returned
// otherwise the new text and every candidate go to the embedder in one batch
func (s *Svc) Analyze(ctx context.Context, in domain.Submission) (domain.Result, error) {
	log := logger.C(ctx)
	log.Debug().Str("title", in.TitleText()).Msg("analyze request")

	cleaned := s.norm.Normalize(in.Raw())
	log.Debug().Str("cleaned", cleaned).Msg("normalized submission")

	if len(in.ExistingTexts) == 0 {
		e := s.corpus.Append(in.Raw())
		log.Info().Str("entry_id", e.ID.String()).Int("corpus_size", s.corpus.Len()).Msg("first idea recorded")
		return domain.Result{
			SimilarityScore: firstIdeaScore,
			RiskLevel:       string(similarity.LevelLow),
			Message:         firstIdeaMessage,
		}, nil
	}

	texts := make([]string, 0, len(in.ExistingTexts)+1)
	texts = append(texts, cleaned)
	for _, t := range in.ExistingTexts {
		texts = append(texts, s.norm.Normalize(t))
	}

	vecs, err := s.embed(ctx, texts)
	if err != nil {
		log.Error().Err(err).Str("embedder", s.emb.Name()).Int("texts", len(texts)).Msg("embedding failed")
		return domain.Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "embedding failed")
	}

	score, err := similarity.Score(vecs[0], vecs[1:])
	if err != nil {
		return domain.Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "scoring failed")
	}
	a := similarity.Classify(score)
	log.Info().Int("score", score).Str("risk", string(a.Level)).Int("candidates", len(vecs)-1).Msg("calculated score")

	return domain.Result{
		SimilarityScore: score,
		RiskLevel:       string(a.Level),
		Message:         a.Message,
	}, nil
}

func (s *Svc) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.opts.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.EmbedTimeout)
		defer cancel()
	}
	vecs, err := s.emb.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, perr.Internalf("embedder returned %d vectors for %d texts", len(vecs), len(texts))
	}
	return vecs, nil
}
