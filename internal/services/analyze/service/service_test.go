package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"ideaguard/internal/core/embed"
	perr "ideaguard/internal/platform/errors"
	kit "ideaguard/internal/platform/testkit"
	"ideaguard/internal/services/analyze/corpus"
	"ideaguard/internal/services/analyze/domain"
)

// recorder wraps an embedder and records each batch
type recorder struct {
	mu      sync.Mutex
	inner   embed.Embedder
	batches [][]string
	err     error
	delay   time.Duration
}

func (r *recorder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	r.mu.Lock()
	r.batches = append(r.batches, append([]string(nil), texts...))
	r.mu.Unlock()
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.inner.Embed(ctx, texts)
}

func (r *recorder) Dims() int    { return r.inner.Dims() }
func (r *recorder) Name() string { return "recorder" }

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func str(s string) *string { return &s }

func newSvc(t *testing.T, opts Options) (*Svc, *recorder, *corpus.Accumulator) {
	t.Helper()
	rec := &recorder{inner: embed.NewHash(0)}
	acc := corpus.New()
	return New(rec, acc, opts), rec, acc
}

func TestAnalyze_FirstIdeaRecordsRaw(t *testing.T) {
	s, rec, acc := newSvc(t, Options{})

	got, err := s.Analyze(context.Background(), domain.Submission{
		Title:       str("Decentralized Voting App"),
		Description: str("A blockchain platform for voting"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.Result{SimilarityScore: 0, RiskLevel: "LOW", Message: "First idea"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if rec.calls() != 0 {
		t.Fatalf("embedder called %d times on first idea", rec.calls())
	}
	snap := acc.Snapshot()
	if len(snap) != 1 || snap[0].Text != "Decentralized Voting App A blockchain platform for voting" {
		t.Fatalf("corpus = %+v", snap)
	}
}

func TestAnalyze_EmptyExistingTextsSliceIsFirstIdea(t *testing.T) {
	s, rec, acc := newSvc(t, Options{})
	got, err := s.Analyze(context.Background(), domain.Submission{
		Title:         str(""),
		Description:   str(""),
		ExistingTexts: []string{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Message != "First idea" || rec.calls() != 0 {
		t.Fatalf("got %+v with %d embed calls", got, rec.calls())
	}
	if snap := acc.Snapshot(); len(snap) != 1 || snap[0].Text != " " {
		t.Fatalf("corpus = %+v", snap)
	}
}

func TestAnalyze_Scenarios(t *testing.T) {
	const title = "Campus Voting"
	const desc = "A decentralized voting app for university students"

	cases := []struct {
		name      string
		title     string
		desc      string
		existing  []string
		wantLevel string
		check     func(int) bool
	}{
		{
			name:      "near duplicate is high",
			title:     title,
			desc:      desc,
			existing:  []string{"Voting for university students on campus"},
			wantLevel: "HIGH",
			check:     func(s int) bool { return s >= 45 },
		},
		{
			name:      "identical after stop words is 100",
			title:     "Decentralized Voting App",
			desc:      "A blockchain platform for voting",
			existing:  []string{"Voting APP: a Web3 platform for voting!"},
			wantLevel: "HIGH",
			check:     func(s int) bool { return s == 100 },
		},
		{
			name:      "best candidate wins",
			title:     title,
			desc:      desc,
			existing:  []string{"Farm irrigation with soil moisture sensors", "Voting for university students on campus"},
			wantLevel: "HIGH",
			check:     func(s int) bool { return s >= 45 },
		},
		{
			name:      "stop word only texts do not crash",
			title:     "Decentralized Blockchain Platform",
			desc:      "",
			existing:  []string{"decentralized blockchain platform"},
			wantLevel: "LOW",
			check:     func(s int) bool { return s == 0 },
		},
		{
			name:      "disjoint vocabulary is low",
			title:     title,
			desc:      desc,
			existing:  []string{"Farm irrigation with soil moisture sensors", "Parking spot finder"},
			wantLevel: "LOW",
			check:     func(s int) bool { return s < 25 },
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s, rec, acc := newSvc(t, Options{})
			got, err := s.Analyze(context.Background(), domain.Submission{
				Title:         str(tc.title),
				Description:   str(tc.desc),
				ExistingTexts: tc.existing,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.RiskLevel != tc.wantLevel || !tc.check(got.SimilarityScore) {
				t.Fatalf("got %+v, want level %s", got, tc.wantLevel)
			}
			if got.SimilarityScore < 0 || got.SimilarityScore > 100 {
				t.Fatalf("score out of range: %d", got.SimilarityScore)
			}
			if rec.calls() != 1 {
				t.Fatalf("embedder called %d times, want 1", rec.calls())
			}
			if n := len(rec.batches[0]); n != len(tc.existing)+1 {
				t.Fatalf("batch size %d, want %d", n, len(tc.existing)+1)
			}
			if acc.Len() != 0 {
				t.Fatalf("corpus touched on comparison path")
			}
		})
	}
}

func TestAnalyze_BatchIsNormalized(t *testing.T) {
	s, rec, _ := newSvc(t, Options{})
	_, err := s.Analyze(context.Background(), domain.Submission{
		Title:         str("Smart Contract Escrow"),
		Description:   str("For Freelancers!"),
		ExistingTexts: []string{"NFT Ticketing, for Concerts"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"escrow for freelancers", "ticketing for concerts"}
	got := rec.batches[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("batch = %q, want %q", got, want)
	}
}

func TestAnalyze_EmbedderFailureIsServerError(t *testing.T) {
	s, rec, acc := newSvc(t, Options{})
	rec.err = errors.New("model offline")

	_, err := s.Analyze(context.Background(), domain.Submission{
		Title:         str("a"),
		Description:   str("b"),
		ExistingTexts: []string{"c"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", perr.HTTPStatus(err))
	}
	if w := perr.WireFrom(err); w.Message != "embedding failed" {
		t.Fatalf("wire message = %q", w.Message)
	}
	if acc.Len() != 0 {
		t.Fatal("corpus touched on failure")
	}
}

func TestAnalyze_EmbedTimeout(t *testing.T) {
	s, rec, _ := newSvc(t, Options{EmbedTimeout: 10 * time.Millisecond})
	rec.delay = time.Second

	_, err := s.Analyze(context.Background(), domain.Submission{
		Title:         str("a"),
		Description:   str("b"),
		ExistingTexts: []string{"c"},
	})
	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if perr.HTTPStatus(err) != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", perr.HTTPStatus(err))
	}
}

// short vectors from a misbehaving provider surface as errors, not panics
type shortEmbedder struct{}

func (shortEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return [][]float32{{1}}, nil
}
func (shortEmbedder) Dims() int    { return 1 }
func (shortEmbedder) Name() string { return "short" }

func TestAnalyze_ShortBatchIsError(t *testing.T) {
	s := New(shortEmbedder{}, corpus.New(), Options{})
	_, err := s.Analyze(context.Background(), domain.Submission{
		Title:         str("a"),
		Description:   str("b"),
		ExistingTexts: []string{"c", "d"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAnalyze_ConcurrentFirstIdeas(t *testing.T) {
	s, _, acc := newSvc(t, Options{})
	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Analyze(context.Background(), domain.Submission{Title: str("t"), Description: str("d")})
		}()
	}
	wg.Wait()
	if acc.Len() != n {
		t.Fatalf("corpus len = %d, want %d", acc.Len(), n)
	}
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, corpus.New(), Options{}) })
	kit.MustPanic(t, func() { New(embed.NewHash(0), nil, Options{}) })
}
