package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, Options{Level: tt.level})
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, Options{Level: "info"})
	logger.Info().Str("file", "a.ppm").Msg("loaded")
	logger.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), out.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "loaded" || entry["file"] != "a.ppm" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestNew_ConsoleOutput(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, Options{Format: "console"})
	logger.Info().Msg("hello")

	if !strings.Contains(out.String(), "hello") {
		t.Errorf("console output missing message: %q", out.String())
	}
	if strings.HasPrefix(out.String(), "{") {
		t.Errorf("console output looks like JSON: %q", out.String())
	}
}
