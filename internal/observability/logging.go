// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global structured logger instance used throughout the application.
var Logger = slog.New(&ctxHandler{slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})})

type contextKey string

// Context keys read by the logging handler.
const (
	RequestIDKey contextKey = "request_id"
	TraceIDKey   contextKey = "trace_id"
)

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if tid, ok := ctx.Value(TraceIDKey).(string); ok {
		r.AddAttrs(slog.String("trace_id", tid))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds a context-aware logger: JSON in production, text elsewhere.
func NewLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ctxHandler{handler})
}

// InitLogger replaces the global Logger and the slog default.
func InitLogger(env, level string) {
	Logger = NewLogger(os.Stdout, env, level)
	slog.SetDefault(Logger)
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

// StoreLogger provides structured logging for collection reads and writes.
type StoreLogger struct {
	backend string
	logger  *slog.Logger
}

// NewStoreLogger creates a StoreLogger tagged with the backend name.
// A nil logger falls back to the global Logger at call time.
func NewStoreLogger(backend string, logger *slog.Logger) *StoreLogger {
	return &StoreLogger{backend: backend, logger: logger}
}

func (l *StoreLogger) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return Logger
}

// LogRead logs a collection read. seeded is true when the key was absent and
// the seed value was returned instead.
func (l *StoreLogger) LogRead(ctx context.Context, key string, n int, seeded bool) {
	l.log().DebugContext(ctx, "store read",
		slog.String("backend", l.backend),
		slog.String("key", key),
		slog.Int("count", n),
		slog.Bool("seeded", seeded),
	)
}

// LogWrite logs a wholesale collection write.
func (l *StoreLogger) LogWrite(ctx context.Context, key string, n int) {
	l.log().DebugContext(ctx, "store write",
		slog.String("backend", l.backend),
		slog.String("key", key),
		slog.Int("count", n),
	)
}

// LogInitialize logs whether a key received its seed value.
func (l *StoreLogger) LogInitialize(ctx context.Context, key string, written bool) {
	l.log().InfoContext(ctx, "store initialize",
		slog.String("backend", l.backend),
		slog.String("key", key),
		slog.Bool("seeded", written),
	)
}

// LogDelete logs a key removal.
func (l *StoreLogger) LogDelete(ctx context.Context, key string) {
	l.log().InfoContext(ctx, "store delete",
		slog.String("backend", l.backend),
		slog.String("key", key),
	)
}

// LogError logs a failed store operation.
func (l *StoreLogger) LogError(ctx context.Context, err error, operation, key string) {
	l.log().ErrorContext(ctx, "store error",
		slog.String("backend", l.backend),
		slog.String("operation", operation),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}
