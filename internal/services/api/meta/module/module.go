// Package module exposes health, version and service info as a modkit module
package module

import (
	"net/http"
	"time"

	"ideaguard/internal/core/version"
	modkit "ideaguard/internal/modkit"
	"ideaguard/internal/modkit/httpkit"
	str "ideaguard/internal/platform/strings"
	metahttp "ideaguard/internal/services/api/meta/http"
)

// Ports is what meta reads from other modules, a nil Corpus hides corpus_size
type Ports struct {
	Corpus metahttp.CorpusCounter
}

// Module serves /meta, it owns no state beyond its start time
type Module struct {
	built modkit.Built
	info  metahttp.Deps
}

// New builds the meta module, modkit.WithPorts supplies the corpus counter
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	return &Module{
		built: b,
		info: metahttp.Deps{
			ServiceName: version.ServiceName,
			StartedAt:   time.Now(),
			Embedder:    deps.Embedder,
			Corpus:      in.Corpus,
		},
	}
}

// MountRoutes mounts /meta/health, /meta/version and /meta/service under r
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.built.Mw, func(sub httpkit.Router) {
		metahttp.Register(sub, m.info)
		m.built.Register(sub)
	})
}

// Name is always "meta" unless overridden
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta module name") }

// Prefix is the normalized mount path
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports is nil, nothing depends on meta
func (m *Module) Ports() any { return nil }
