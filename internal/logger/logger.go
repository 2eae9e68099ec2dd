// Package logger provides structured logging for servicemap.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with a few domain-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger for env. Development gets human-readable debug output,
// everything else JSON at info level.
func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(env string, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a logger carrying the extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// DataLoad records where the dataset came from.
func (l *Logger) DataLoad(source string, count int, fallback bool) {
	l.Info("services_loaded",
		slog.String("source", source),
		slog.Int("count", count),
		slog.Bool("fallback", fallback),
	)
}

// DataLoadFailed records a failed fetch that was recovered with the fallback list.
func (l *Logger) DataLoadFailed(source string, err error) {
	l.Warn("services_load_failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// HTTPRequest logs an HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}
