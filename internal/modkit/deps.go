// Package modkit provides module wiring and core deps
package modkit

import (
	"ideaguard/internal/core/embed"
	"ideaguard/internal/platform/config"
	"ideaguard/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	Embedder embed.Embedder
}

// MustEmbedder returns the embedder or panics naming the module that needed it
func (d Deps) MustEmbedder(module string) embed.Embedder {
	if d.Embedder == nil {
		panic(module + " module requires an embedder")
	}
	return d.Embedder
}
