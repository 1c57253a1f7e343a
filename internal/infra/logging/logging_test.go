package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, FormatJSON, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("Expense created", "expense_id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q", lines[0])
	}
	if entry["msg"] != "Expense created" {
		t.Errorf("expected msg Expense created, got %v", entry["msg"])
	}
	if entry["expense_id"] != "abc" {
		t.Errorf("expected expense_id abc, got %v", entry["expense_id"])
	}
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, FormatText, slog.LevelDebug))

	logger.Debug("Budget checked", "owner_id", "o1")

	out := buf.String()
	if !strings.Contains(out, "Budget checked") {
		t.Errorf("expected message in output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected text output, got JSON")
	}
}

func TestDefaultFormat(t *testing.T) {
	if got := DefaultFormat("development"); got != FormatText {
		t.Errorf("expected text, got %s", got)
	}
	if got := DefaultFormat("production"); got != FormatJSON {
		t.Errorf("expected json, got %s", got)
	}
}
