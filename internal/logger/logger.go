package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is the process-wide logger, replaced by Initialize.
var Log *slog.Logger

func init() {
	// Safe defaults for tests; main calls Initialize with configured values.
	Initialize("info", "text")
}

// Initialize sets up the global logger with the specified level and format ("text" or "json").
func Initialize(level, format string) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
