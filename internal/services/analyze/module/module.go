// Package module wires analyze into the API using modkit
package module

import (
	"net/http"

	modkit "ideaguard/internal/modkit"
	"ideaguard/internal/modkit/httpkit"
	str "ideaguard/internal/platform/strings"
	"ideaguard/internal/services/analyze/corpus"
	analyzehttp "ideaguard/internal/services/analyze/http"
	analyzesvc "ideaguard/internal/services/analyze/service"
)

// Module owns the in memory corpus and the analyze service built on it
type Module struct {
	built modkit.Built
	ports Ports
}

// New constructs the analyze module, the corpus lives as long as the module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analyze"), modkit.WithPrefix("/analyze")}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	emb := deps.MustEmbedder("analyze")
	acc := corpus.New()
	svc := analyzesvc.New(emb, acc, analyzesvc.Options{
		EmbedTimeout: cfg.EmbedTimeout,
	})
	deps.Log.Info().
		Str("embedder", emb.Name()).
		Dur("embed_timeout", cfg.EmbedTimeout).
		Msg("analyze module ready")

	return &Module{built: b, ports: Ports{Service: svc, Corpus: acc}}
}

// MountRoutes mounts POST {prefix} returning the enveloped result
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.built.Mw, func(sub httpkit.Router) {
		analyzehttp.Register(sub, m.ports.Service)
		m.built.Register(sub)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }
