package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"loud", bolt.INFO},
		{"", bolt.INFO},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestInit_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("hidden")
	Info().With(
		RunID("run-1"),
		Strategy("ucs-graph"),
		Problem("problem1"),
		Counts(12, 34),
		Cost(6.7),
		Duration(1500*time.Millisecond),
		Err(errors.New("boom")),
		Err(nil),
	).Msg("search finished")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), out)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &fields); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, lines[0])
	}
	checks := map[string]interface{}{
		"run_id":      "run-1",
		"strategy":    "ucs-graph",
		"problem":     "problem1",
		"expanded":    float64(12),
		"generated":   float64(34),
		"cost":        "6.70",
		"duration_ms": float64(1500),
	}
	for k, want := range checks {
		if fields[k] != want {
			t.Errorf("field %s = %v, want %v", k, fields[k], want)
		}
	}
	if !strings.Contains(lines[0], "boom") {
		t.Errorf("expected error text in log line: %s", lines[0])
	}
}

func TestAt_RoutesLevels(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	At("info").Msg("skipped")
	At("error").With(Str("k", "v"), Int("n", 1), Bool("b", true)).Msg("kept")

	out := buf.String()
	if strings.Contains(out, "skipped") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("expected error line, got: %s", out)
	}
}

func TestGet_LazyDefault(t *testing.T) {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()

	if Get() == nil {
		t.Fatal("expected a default logger")
	}
	if Get() != Get() {
		t.Error("expected Get to return the same logger")
	}
}
