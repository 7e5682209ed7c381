// Package logger builds the zerolog logger used by every binary and
// threads it through context.Context.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// New creates the default console logger. The level is taken from the
// LOG_LEVEL environment variable (debug, info, warn, error) and falls
// back to info.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(levelFromEnv()).With().Timestamp().Logger()
}

// NewWithWriter creates a logger writing to w. Used by tests to capture
// output.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithContext returns a context carrying the logger.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, log)
}

// FromContext retrieves the logger from the context, or a default
// logger when none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return log
	}
	return New()
}
