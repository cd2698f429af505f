package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "ideaguard/internal/platform/net/http"
	kit "ideaguard/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func op(t *testing.T, spec map[string]any, path, method string) map[string]any {
	t.Helper()
	paths := spec["paths"].(map[string]any)
	node, ok := paths[path].(map[string]any)
	if !ok {
		t.Fatalf("path %s missing", path)
	}
	return node[method].(map[string]any)
}

func TestSpec_DefaultsApplied(t *testing.T) {
	kit.Serial(t)
	spec, err := Spec()
	if err != nil {
		t.Fatalf("Spec: %v", err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	if _, ok := spec["servers"].([]any); !ok {
		t.Fatal("servers missing")
	}
	for _, p := range []string{"/analyze", "/api/v1/analyze"} {
		resps := op(t, spec, p, "post")["responses"].(map[string]any)
		for _, code := range []string{"200", "400", "500"} {
			if _, ok := resps[code]; !ok {
				t.Fatalf("%s missing %s response", p, code)
			}
		}
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	for _, name := range []string{"Submission", "Result", "ErrorResponse"} {
		if _, ok := schemas[name]; !ok {
			t.Fatalf("schema %s missing", name)
		}
	}
}

func TestSpec_TitleSuffixAndMutators(t *testing.T) {
	kit.Serial(t)
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(dev)")
	kit.Swap(t, &mutators, nil)
	Register(nil)
	Register(func(s map[string]any) { s["x-mutated"] = true })

	spec, err := Spec()
	if err != nil {
		t.Fatalf("Spec: %v", err)
	}
	if spec["info"].(map[string]any)["title"] != "IdeaGuard API (dev)" {
		t.Fatalf("title = %v", spec["info"])
	}
	if spec["x-mutated"] != true {
		t.Fatal("mutator not applied")
	}
}

func TestMount_ServesDocAndHandlesBadJSON(t *testing.T) {
	kit.Serial(t)
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), true)

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rr.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("doc.json not json: %v", err)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rr.Code)
	}

	kit.Swap(t, &docReader, func() string { return "{" })
	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("bad doc = %d", rr.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), false)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("disabled mount = %d", rr.Code)
	}
}
