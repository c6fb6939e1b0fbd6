// Package logging provides structured logging configuration using log/slog.
//
// Log lines go to stderr so that stdout only carries command output.
// Each conversion run gets its own run_id, carried through the command
// context, so all lines of one run can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
)

type loggerKey struct{}

// Setup builds a logger for the given level and format, installs it as the
// slog default and returns it.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts a string log level to slog.Level.
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

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a discard logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

// WithRun returns a context whose logger carries run_id plus any extra
// fields.
//
// Usage:
//
//	ctx = logging.WithRun(ctx, utils.NewRunID(), "input_format", "csv")
//	logging.FromContext(ctx).Info("conversion started")
func WithRun(ctx context.Context, runID string, args ...any) context.Context {
	logger := FromContext(ctx).With(append([]any{"run_id", runID}, args...)...)
	return NewContext(ctx, logger)
}
