package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "ideaguard/internal/platform/errors"
	"ideaguard/internal/platform/logger"
	pnet "ideaguard/internal/platform/net"
	phttp "ideaguard/internal/platform/net/http"
)

// RecoverJSON converts panics into an enveloped JSON 500 and logs the stack with the request id
// http.ErrAbortHandler is re-raised so net/http can abort the connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
