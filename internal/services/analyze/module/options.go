package module

import (
	"time"

	"ideaguard/internal/platform/config"
)

// Options controls analyze behavior
type Options struct {
	EmbedTimeout time.Duration // deadline for the single embed call, 0 disables it
}

// FromConfig reads ANALYZE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("ANALYZE_")
	return Options{
		EmbedTimeout: ac.MayDuration("EMBED_TIMEOUT", 30*time.Second),
	}
}
