// Package logging carries a run-scoped slog logger through a context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// contextKey prevents collisions with other packages' context values.
type contextKey string

const (
	loggerKey = contextKey("logger")
	runIDKey  = contextKey("run_id")
)

// New builds the JSON logger used by the command line entry point.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// ParseLevel maps debug/info/warn/error onto slog levels. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// WithRunLogger stores a logger enriched with a fresh run id in ctx, along with the id.
func WithRunLogger(ctx context.Context, base *slog.Logger) (context.Context, string) {
	runID := uuid.NewString()
	ctx = context.WithValue(ctx, runIDKey, runID)
	return WithLogger(ctx, base.With(slog.String("run_id", runID))), runID
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return logger
}

// RunIDFromContext returns the run id attached by WithRunLogger, or "".
func RunIDFromContext(ctx context.Context) string {
	runID, _ := ctx.Value(runIDKey).(string)
	return runID
}
