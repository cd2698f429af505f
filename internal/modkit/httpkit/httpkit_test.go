package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ideaguard/internal/platform/config"
	phttp "ideaguard/internal/platform/net/http"
	kit "ideaguard/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Title *string `json:"title" validate:"required"`
}

func newRouter() (*chi.Mux, Router) {
	m := chi.NewRouter()
	return m, phttp.AdaptChi(m)
}

func TestMountAPIV1_PrefixAndMiddleware(t *testing.T) {
	m, r := newRouter()
	hits := 0
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hits++
			next.ServeHTTP(w, req)
		})
	}
	MountAPIV1(r, []func(http.Handler) http.Handler{mw}, func(api Router) {
		MountUnder(api, "meta", nil, func(sub Router) {
			Get(sub, "/health", func(*http.Request) (any, error) { return map[string]string{"status": "ok"}, nil })
		})
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/meta/health", nil))
	if rr.Code != http.StatusOK || hits != 1 {
		t.Fatalf("status=%d hits=%d", rr.Code, hits)
	}
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil || env.Data == nil {
		t.Fatalf("envelope: %v %s", err, rr.Body.String())
	}
}

func TestPostJSON_BareAndValidation(t *testing.T) {
	m, r := newRouter()
	PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) {
		return Bare(map[string]string{"title": *in.Title}), nil
	}, JSONOptions{MaxBytes: 1 << 10})

	cases := []struct {
		name string
		body string
		code int
		want string
	}{
		{"bare ok", `{"title":"x"}`, http.StatusOK, `{"title":"x"}`},
		{"empty title ok", `{"title":""}`, http.StatusOK, `{"title":""}`},
		{"missing title", `{}`, http.StatusBadRequest, "title"},
		{"malformed", `{"title":`, http.StatusBadRequest, "status_code"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			m.ServeHTTP(rr, req)
			if rr.Code != tc.code {
				t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
			}
			kit.MustContain(t, rr.Body.String(), tc.want)
		})
	}
}

func TestStack_Order(t *testing.T) {
	mw := Stack(StackOptions{})
	if len(mw) != 10 {
		t.Fatalf("stack without timeout = %d", len(mw))
	}
	if len(CommonStack()) != 11 {
		t.Fatalf("common stack = %d", len(CommonStack()))
	}

	m, r := newRouter()
	r.Use(CommonStack()...)
	r.Post("/analyze", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	pre := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	pre.Header.Set("Origin", "http://localhost:3000")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, pre)
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight headers = %v", rr.Header())
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/analyze/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("trailing slash = %d", rr.Code)
	}
}

func TestStackFromConfig(t *testing.T) {
	kit.Serial(t)
	t.Setenv("TEST_HK_CORS_EXPOSED_HEADERS", "X-Request-ID, X-Corpus-Size")
	t.Setenv("TEST_HK_REQUEST_TIMEOUT", "5s")
	o := StackFromConfig(config.New().Prefix("TEST_HK_"))
	if len(o.CORSExposed) != 2 || o.CORSExposed[1] != "X-Corpus-Size" {
		t.Fatalf("exposed = %v", o.CORSExposed)
	}
	if o.RequestTimeout.Seconds() != 5 || o.CORSMaxAge != 300 {
		t.Fatalf("opts = %+v", o)
	}
}

func TestFallbacks_Enveloped(t *testing.T) {
	m, r := newRouter()
	Fallbacks(r)
	MountAPIV1(r, nil, func(api Router) {
		PostJSON(api, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in, nil })
	})

	cases := []struct {
		method, path string
		status       int
		code         string
	}{
		{http.MethodGet, "/missing", http.StatusNotFound, `"code":6`},
		{http.MethodGet, "/api/v1/missing", http.StatusNotFound, `"code":6`},
		{http.MethodGet, "/api/v1/echo", http.StatusMethodNotAllowed, `"code":7`},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
		if rr.Code != c.status {
			t.Fatalf("%s %s = %d", c.method, c.path, rr.Code)
		}
		kit.MustContain(t, rr.Body.String(), c.code)
		kit.MustContain(t, rr.Body.String(), `"status_code"`)
	}
}
