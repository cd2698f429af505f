// @title         IdeaGuard API
// @version       1.0
// @description   Similarity scoring for idea submissions

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ideaguard/internal/core/embed"
	"ideaguard/internal/platform/config"
	"ideaguard/internal/platform/logger"
	phttp "ideaguard/internal/platform/net/http"

	"ideaguard/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_") // CORE_API_PORT, CORE_API_SWAGGER ...

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emb, err := embed.New(embed.FromConfig(root))
	if err != nil {
		l.Panic().Err(err).Msg("embedder init failed")
	}
	defer func() {
		if err := embed.Close(emb); err != nil {
			l.Error().Err(err).Msg("failed to close embedder")
		}
	}()

	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			HTTP:           apiCfg,
			Embedder:       emb,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
