package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"ideaguard/internal/platform/config"
	"ideaguard/internal/platform/net/middleware"
)

// StackOptions tunes the baseline stack
type StackOptions struct {
	// CORSExposed lists response headers browsers may read, X-Request-ID when empty
	CORSExposed []string
	// CORSMaxAge caches preflight responses in seconds
	CORSMaxAge int
	// RequestTimeout cancels the request context, 0 disables it
	RequestTimeout time.Duration
	// SlowRequest marks access log lines as warn
	SlowRequest time.Duration
}

// StackFromConfig reads CORS_EXPOSED_HEADERS, CORS_MAX_AGE, REQUEST_TIMEOUT and SLOW_REQUEST
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSExposed:    cfg.MayCSV("CORS_EXPOSED_HEADERS", nil),
		CORSMaxAge:     cfg.MayInt("CORS_MAX_AGE", 300),
		RequestTimeout: cfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
		SlowRequest:    cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
	}
}

// CommonStack returns the baseline stack with defaults
func CommonStack() []func(http.Handler) http.Handler {
	return Stack(StackOptions{RequestTimeout: 60 * time.Second, SlowRequest: 2 * time.Second})
}

// Stack returns the baseline middleware slice in order
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: []string{"/health"}}),

		// cross-origin, must answer preflight before routing
		middleware.CORS(middleware.CORSOptions{ExposedHeaders: o.CORSExposed, MaxAge: o.CORSMaxAge}),

		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
	}
	if o.RequestTimeout > 0 {
		mw = append(mw, middleware.Timeout(o.RequestTimeout))
	}
	return mw
}
