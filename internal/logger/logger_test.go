package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_JSONFormatInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
	})

	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("expected JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected attribute in output, got: %s", out)
	}
}

func TestPrettyHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "pretty",
		Level:  slog.LevelWarn,
	})

	log.Debug("should not appear")
	log.Info("should not appear either")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("low-level records leaked into output: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record missing from output: %s", out)
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "pretty",
	})

	log.With("request_id", "abc123").Info("processing")

	out := buf.String()
	if !strings.Contains(out, "request_id=abc123") {
		t.Errorf("expected pre-set attribute in output, got: %s", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
	})

	log.WithError(errTest{}).Error("boom")

	if !strings.Contains(buf.String(), "test error") {
		t.Errorf("expected wrapped error in output, got: %s", buf.String())
	}
}

type errTest struct{}

func (errTest) Error() string { return "test error" }
