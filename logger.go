package vecbuf

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecbuf-specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithType adds the element type to the logger.
func (l *Logger) WithType(typeName string) *Logger {
	return &Logger{
		Logger: l.Logger.With("type", typeName),
	}
}

// WithBackend adds the backend to the logger.
func (l *Logger) WithBackend(b Backend) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", b.String()),
	}
}

func (l *Logger) logRealloc(oldCap, newCap, length int) {
	l.Debug("capacity changed",
		"old_capacity", oldCap,
		"new_capacity", newCap,
		"length", length,
	)
}

func (l *Logger) logClone(target string, fastPath bool, n int) {
	path := "elementwise"
	if fastPath {
		path = "bytecopy"
	}
	l.Debug("vector cloned",
		"target", target,
		"path", path,
		"copied", n,
	)
}
