package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/staffdesk/employee-manager/internal/config"
)

// New builds the application logger. Production emits JSON, everything
// else gets the human-readable text handler.
func New(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.AppEnv) == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
