package logger

import (
	"bytes"
	"context"
	"testing"

	kit "ideaguard/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"info":    zerolog.InfoLevel,
		"WARNING": zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.DebugLevel,
		"loud":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

// Init runs once per process so every assertion on output lives in this test
func TestInit_RequestScopedFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "console",
		Service:      "ideaguard-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Named("analyze").Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-123", "10.0.0.7")
	C(ctx).Info().Int("score", 62).Msg("calculated score")
	C(context.Background()).Debug().Msg("no-fields")

	out := buf.String()
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "analyze")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "10.0.0.7")
	kit.MustContain(t, out, "calculated score")
	kit.MustContain(t, out, "ideaguard-test")
	kit.MustContain(t, out, "build=")
	kit.MustContain(t, out, "no-fields")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" {
		t.Fatalf("level/format mismatch: %+v", opt)
	}
	if opt.Service != "ideaguard-api" {
		t.Fatalf("default service = %q", opt.Service)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("caller/sample mismatch: %+v", opt)
	}
}
