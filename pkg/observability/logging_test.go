package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase DEBUG", input: "DEBUG", expected: slog.LevelDebug},
		{name: "mixed case Warn", input: "Warn", expected: slog.LevelWarn},
		{name: "empty string defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown level defaults to info", input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInitLoggerJSONCarriesServiceName(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "info", Format: "json", ServiceName: "offerd", Output: &buf})

	logger.Info("offer simulated", "country", "AR")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["service"] != "offerd" {
		t.Errorf("service = %v, want offerd", line["service"])
	}
	if line["country"] != "AR" {
		t.Errorf("country = %v, want AR", line["country"])
	}
}

func TestInitLoggerTextDropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "warn", Format: "text", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LogConfig{Level: "info", Format: "json", Output: &buf})

	if logger.Handler() != slog.Default().Handler() {
		t.Error("InitLogger did not set the default logger")
	}
}
