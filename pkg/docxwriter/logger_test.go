package docxwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       log.Level
		expected    []string
		notExpected []string
	}{
		{
			name:     "debug level shows all messages",
			level:    log.DebugLevel,
			expected: []string{"DEBU", "debug message", "INFO", "info message", "WARN", "ERRO"},
		},
		{
			name:        "info level hides debug messages",
			level:       log.InfoLevel,
			expected:    []string{"info message", "warn message", "error message"},
			notExpected: []string{"debug message"},
		},
		{
			name:        "error level shows errors only",
			level:       log.ErrorLevel,
			expected:    []string{"error message"},
			notExpected: []string{"debug message", "info message", "warn message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)
			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message", "key", "Intro")

			out := buf.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.notExpected {
				if strings.Contains(out, unwanted) {
					t.Errorf("output contains %q:\n%s", unwanted, out)
				}
			}
			if !strings.Contains(out, "key=Intro") {
				t.Errorf("structured field missing:\n%s", out)
			}
		})
	}
}

func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, log.InfoLevel))
	GetLogger().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("replacement logger not used: %q", buf.String())
	}

	SetLogger(nil)
	if GetLogger() == nil {
		t.Fatal("SetLogger(nil) left no logger")
	}
	GetLogger().Info("discarded")
	if strings.Contains(buf.String(), "discarded") {
		t.Error("nil logger still writes to the previous writer")
	}
}

func TestNewLoggerNilWriter(t *testing.T) {
	logger := NewLogger(nil, log.DebugLevel)
	logger.Info("nowhere")
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}
