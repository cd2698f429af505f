package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "ideaguard/internal/platform/errors"
	kit "ideaguard/internal/platform/testkit"
)

// presence matters, emptiness does not
type idea struct {
	Title    *string  `json:"title" validate:"required"`
	Body     *string  `json:"description" validate:"required"`
	Existing []string `json:"existing_texts,omitempty"`
}

type bounded struct {
	Name string `json:"name" validate:"min=2,max=4"`
}

func post(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Table(t *testing.T) {
	lenient := JSONOptions{MaxBytes: 1 << 20}

	cases := []struct {
		name      string
		body      string
		opts      []JSONOptions
		wantCode  perr.ErrorCode
		wantErr   bool
		wantField string
	}{
		{name: "full payload", body: `{"title":"t","description":"d","existing_texts":["x"]}`},
		{name: "empty strings are present", body: `{"title":"","description":""}`},
		{name: "missing title", body: `{"description":"d"}`, wantErr: true, wantCode: perr.ErrorCodeValidation, wantField: "title"},
		{name: "null description", body: `{"title":"t","description":null}`, wantErr: true, wantCode: perr.ErrorCodeValidation, wantField: "description"},
		{name: "empty body", body: "", wantErr: true, wantCode: perr.ErrorCodeJSON},
		{name: "malformed", body: `{"title":`, wantErr: true, wantCode: perr.ErrorCodeJSON},
		{name: "wrong type", body: `{"title":1,"description":"d"}`, wantErr: true, wantCode: perr.ErrorCodeJSON},
		{name: "trailing data", body: `{"title":"t","description":"d"} {}`, wantErr: true, wantCode: perr.ErrorCodeJSON},
		{name: "unknown field rejected by default", body: `{"title":"t","description":"d","extra":1}`, wantErr: true, wantCode: perr.ErrorCodeJSON},
		{name: "unknown field allowed when lenient", body: `{"title":"t","description":"d","extra":1}`, opts: []JSONOptions{lenient}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[idea](post(tc.body), tc.opts...)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if got := perr.CodeOf(err); got != tc.wantCode {
				t.Fatalf("code = %v, want %v (%v)", got, tc.wantCode, err)
			}
			if perr.HTTPStatus(err) != http.StatusBadRequest {
				t.Fatalf("status = %d", perr.HTTPStatus(err))
			}
			if tc.wantField != "" {
				w := perr.WireFrom(err)
				if w.Field != tc.wantField {
					t.Fatalf("field = %q, want %q", w.Field, tc.wantField)
				}
				kit.MustContain(t, w.Message, tc.wantField)
			}
		})
	}
}

func TestParseJSON_PreservesValues(t *testing.T) {
	got, err := ParseJSON[idea](post(`{"title":"Campus Voting","description":"","existing_texts":["a","b"]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title == nil || *got.Title != "Campus Voting" || got.Body == nil || *got.Body != "" {
		t.Fatalf("got %+v", got)
	}
	if len(got.Existing) != 2 {
		t.Fatalf("existing = %v", got.Existing)
	}
}

func TestParseJSON_MaxBytes(t *testing.T) {
	big, _ := json.Marshal(map[string]string{"title": strings.Repeat("x", 64), "description": "d"})
	_, err := ParseJSON[idea](post(string(big)), JSONOptions{MaxBytes: 16, DisallowUnknown: true})
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error, got %v", err)
	}
	kit.MustContain(t, perr.WireFrom(err).Message, "exceeds 16 bytes")
}

func TestValidate_Direct(t *testing.T) {
	title := "t"
	if err := Validate(idea{Title: &title, Body: &title}); err != nil {
		t.Fatalf("valid idea rejected: %v", err)
	}
	err := Validate(idea{Title: &title})
	if perr.CodeOf(err) != perr.ErrorCodeValidation || perr.WireFrom(err).Field != "description" {
		t.Fatalf("got %v", err)
	}
	if perr.CodeOf(Validate(nil)) != perr.ErrorCodeJSON {
		t.Fatal("nil should map to the internal validation error")
	}
}

func TestParseJSON_EmptyBodyAllowed(t *testing.T) {
	got, err := ParseJSON[bounded](post(""), JSONOptions{AllowEmptyBody: true})
	if err != nil || got.Name != "" {
		t.Fatalf("empty body should yield the zero value, got %+v %v", got, err)
	}
}

func TestParseJSON_GetToleratesEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if _, err := ParseJSON[idea](req); err != nil {
		t.Fatalf("GET with no body should be tolerated, got %v", err)
	}
}

func TestParseJSON_TrailingDataSeam(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &jsonMore, func(*json.Decoder) bool { return true })
	_, err := ParseJSON[idea](post(`{"title":"t","description":"d"}`))
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestShortMinMaxTranslations(t *testing.T) {
	_, err := ParseJSON[bounded](post(`{"name":"a"}`))
	if w := perr.WireFrom(err); w.Message != "name must be at least 2" {
		t.Fatalf("min message = %q", w.Message)
	}
	_, err = ParseJSON[bounded](post(`{"name":"abcdef"}`))
	if w := perr.WireFrom(err); w.Message != "name must be at most 4" {
		t.Fatalf("max message = %q", w.Message)
	}
}

func TestValidationFieldAndMessage_Generic(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil -> %q %q", f, m)
	}
	if _, m := ValidationFieldAndMessage(perr.Internalf("plain")); m != "plain" {
		t.Fatalf("generic -> %q", m)
	}
}
