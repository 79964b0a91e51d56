package logger

import (
	"log/slog"
	"os"
)

// New returns the service-wide structured logger. JSON to stdout so log
// shippers need no parsing config.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
