// Package logger provides structured logging setup using slog.
package logger

import (
	"context"
	"log/slog"
	"os"
)

// invocationIDKey is the context key for per-invocation correlation IDs.
type invocationIDKey struct{}

// New creates a structured JSON logger on stderr. Debug mode lowers the level
// so the API client's per-request records show up; otherwise only warnings
// and errors print, keeping normal command output clean.
func New(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// WithInvocationID returns a new context carrying the given invocation ID.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDKey{}, id)
}

// InvocationIDFromContext extracts the invocation ID from the context.
func InvocationIDFromContext(ctx context.Context) string {
	if v := ctx.Value(invocationIDKey{}); v != nil {
		return v.(string)
	}
	return ""
}

// FromContext returns a logger with context fields attached.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := InvocationIDFromContext(ctx); id != "" {
		return base.With("invocation_id", id)
	}
	return base
}
