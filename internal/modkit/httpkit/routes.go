package httpkit

import (
	"net/http"
	"strings"

	perr "ideaguard/internal/platform/errors"
)

// Fallbacks answers unknown routes and wrong verbs with the error envelope
// call it before mounting so sub routers inherit the handlers
func Fallbacks(r Router) {
	r.NotFound(Handle(func(req *http.Request) Response {
		return Error(perr.NotFoundf("no route for %s", req.URL.Path))
	}))
	r.MethodNotAllowed(Handle(func(req *http.Request) Response {
		return Error(perr.Newf(perr.ErrorCodeMethodNotAllowed, "%s not allowed on %s", req.Method, req.URL.Path))
	}))
}

// MountUnder mounts a subrouter at prefix, applies mw, then lets mount register routes
// the prefix gets exactly one leading slash
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/"+strings.Trim(prefix, "/"), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI is MountUnder at /api/{version}
//
//	httpkit.MountAPI(r, "v1", nil, func(api httpkit.Router) {
//	  analyze.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
