package shared

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestConfigureLogger(t *testing.T) {
	t.Run("json formatter with debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf)

		ConfigureLogger(logger, LogConfig{Level: "debug", Format: "json"})
		logger.Debug("allDone", "directory", "widget")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
		}
		if entry["msg"] != "allDone" || entry["directory"] != "widget" {
			t.Errorf("unexpected entry: %v", entry)
		}
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf)

		ConfigureLogger(logger, LogConfig{Level: "chatty"})
		logger.Debug("hidden")

		if buf.Len() != 0 {
			t.Errorf("debug output should be suppressed, got %q", buf.String())
		}
		if logger.GetLevel() != log.InfoLevel {
			t.Errorf("expected info level, got %v", logger.GetLevel())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dcx.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info("hello")
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]string{"node": "x"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Errorf("expected trailing newline, got %q", data)
	}
	if !strings.Contains(string(data), "\n  \"node\"") {
		t.Errorf("expected indented output, got %q", data)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string, got %q", a)
	}
}
