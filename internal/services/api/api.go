// Package api provides the HTTP API for the application
package api

import (
	"ideaguard/internal/core/embed"
	"ideaguard/internal/platform/config"
	"ideaguard/internal/platform/logger"
	phttp "ideaguard/internal/platform/net/http"

	"ideaguard/internal/modkit"
	"ideaguard/internal/modkit/httpkit"
	"ideaguard/internal/modkit/module"
	"ideaguard/internal/modkit/swaggerkit"

	analyzedom "ideaguard/internal/services/analyze/domain"
	analyzehttp "ideaguard/internal/services/analyze/http"
	analyzemod "ideaguard/internal/services/analyze/module"
	metamod "ideaguard/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // root view, modules apply their own prefixes
	HTTP           config.Conf // CORE_API_ view for the middleware stack
	Embedder       embed.Embedder
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// the middleware stack goes on r itself so the legacy /analyze route gets CORS too
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg:      opt.Config,
		Embedder: opt.Embedder,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	r.Use(httpkit.Stack(httpkit.StackFromConfig(opt.HTTP))...)
	httpkit.Fallbacks(r)

	analyze := analyzemod.New(deps)
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Corpus: module.MustPortsOf[analyzedom.CorpusPort](analyze),
	}))

	mods := []module.Module{analyze, meta}

	// original wire shape, unwrapped result at the root
	analyzehttp.RegisterBare(r, module.MustPortsOf[analyzedom.ServicePort](analyze))

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
