package logger

import (
	"log/slog"
	"os"
	"strings"
)

const defaultService = "facility-heatmap"

// New constructs a JSON slog logger. LOG_LEVEL picks the level, SERVICE_NAME overrides the service tag.
func New() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	service := strings.TrimSpace(os.Getenv("SERVICE_NAME"))
	if service == "" {
		service = defaultService
	}
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
