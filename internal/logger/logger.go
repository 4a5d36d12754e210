package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger: JSON at info level in prod, human
// readable text at debug level everywhere else. Every record carries
// the service name so aggregated logs stay attributable.
func New(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var h slog.Handler
	if env == "prod" {
		opts.Level = slog.LevelInfo
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With("service", "cribn-api")
}
