package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLoggerWritesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	logger.Warn("strategy failed", "strategy", "rss", "status", 403)

	out := buf.String()
	if !strings.Contains(out, "strategy failed") {
		t.Errorf("Expected message in output, got %q", out)
	}
	if !strings.Contains(out, "rss") || !strings.Contains(out, "403") {
		t.Errorf("Expected keyvals in output, got %q", out)
	}
}

func TestInitSetsLevel(t *testing.T) {
	original := Logger.GetLevel()
	defer Logger.SetLevel(original)

	Init("error")
	if Logger.GetLevel() != log.ErrorLevel {
		t.Errorf("Init(error) level = %v, want %v", Logger.GetLevel(), log.ErrorLevel)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("Discard() returned nil")
	}
	logger.Error("ignored")
}
