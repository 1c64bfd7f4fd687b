package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  logrus.Level
	}{
		{input: "", want: logrus.InfoLevel},
		{input: "debug", want: logrus.DebugLevel},
		{input: "WARN", want: logrus.WarnLevel},
		{input: "error", want: logrus.ErrorLevel},
		{input: "loud", want: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		t.Setenv(FormatEnv, "json")
		t.Setenv(LevelEnv, "warn")
		var buf bytes.Buffer

		log := New(&buf)
		log.Info("hidden")
		log.WithField("component", "protect").Warn("shown")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("expected one json entry, got %q: %v", buf.String(), err)
		}
		if entry["msg"] != "shown" || entry["component"] != "protect" {
			t.Fatalf("unexpected entry %v", entry)
		}
	})

	t.Run("text format by default", func(t *testing.T) {
		t.Setenv(FormatEnv, "")
		t.Setenv(LevelEnv, "")
		var buf bytes.Buffer

		log := New(&buf)
		if _, ok := log.Formatter.(*logrus.TextFormatter); !ok {
			t.Fatalf("expected text formatter, got %T", log.Formatter)
		}
		if log.GetLevel() != logrus.InfoLevel {
			t.Fatalf("expected info level, got %v", log.GetLevel())
		}
	})
}
