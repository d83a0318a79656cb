package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func parseLine(t *testing.T, line string) entry {
	t.Helper()
	var e entry
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}
	return e
}

func TestJSONLogger_BasicOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("catalog loaded", Int("nodes", 42))

	e := parseLine(t, strings.TrimSpace(buf.String()))
	if e.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", e.Level)
	}
	if e.Message != "catalog loaded" {
		t.Errorf("Expected message 'catalog loaded', got %q", e.Message)
	}
	if e.Fields["nodes"] != float64(42) {
		t.Errorf("Expected nodes field 42, got %v", e.Fields["nodes"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d", len(lines))
	}
	if e := parseLine(t, lines[0]); e.Message != "visible" {
		t.Errorf("Expected 'visible', got %q", e.Message)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(String("component", "traversal"))
	child.Info("chain computed", Int("steps", 7))

	e := parseLine(t, strings.TrimSpace(buf.String()))
	if e.Fields["component"] != "traversal" {
		t.Errorf("Expected pre-set field, got %v", e.Fields)
	}
	if e.Fields["steps"] != float64(7) {
		t.Errorf("Expected call field, got %v", e.Fields)
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, ErrorLevel)

	logger.Info("hidden")
	logger.SetLevel(DebugLevel)
	logger.Debug("now visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || parseLine(t, lines[0]).Message != "now visible" {
		t.Errorf("SetLevel did not take effect: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := Duration("elapsed", 2*time.Second); f.Value != "2s" {
		t.Errorf("Duration field: got %v", f.Value)
	}
	if f := Err(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Err field: got %v", f.Value)
	}
	if f := Err(nil); f.Value != nil {
		t.Errorf("Err(nil) field: got %v", f.Value)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic and With must return a usable logger.
	logger.With(String("k", "v")).Error("ignored")
}
