// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Formats accepted by Setup.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Setup installs the default logger. Text output is colored through tint;
// JSON output matches what log collectors expect in production.
func Setup(w io.Writer, format, level string) *slog.Logger {
	logger := slog.New(NewHandler(w, format, ParseLevel(level)))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the handler for the given format.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if strings.EqualFold(format, FormatText) {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// DefaultFormat picks colored text for development and JSON elsewhere.
func DefaultFormat(environment string) string {
	if environment == "development" {
		return FormatText
	}
	return FormatJSON
}

// ParseLevel maps debug, warn and error to their slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
