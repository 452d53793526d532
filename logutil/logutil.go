// Package logutil provides structured logging for the notification pipeline,
// built on the standard library's slog.
//
// Setup is typically called once from main. All other functions log through
// the configured global logger and accept alternating key-value pairs:
//
//	logutil.Info("notification dispatched", "kind", "achievement", "silent", true)
package logutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "QUESTDECK_DEBUG"

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	debug  bool
)

// Setup configures the global logger. When structured is true, logs are
// emitted as JSON; otherwise as text. Logs go to stderr.
// Safe for concurrent use.
func Setup(debugEnabled, structured bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = debugEnabled
	logger = build(os.Stderr, debugEnabled, structured)
}

// SetupWithWriter configures the global logger with a custom writer.
// Useful for capturing logs in tests.
func SetupWithWriter(w io.Writer, debugEnabled, structured bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = debugEnabled
	logger = build(w, debugEnabled, structured)
}

func build(w io.Writer, debugEnabled, structured bool) *slog.Logger {
	level := slog.LevelInfo
	if debugEnabled {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if structured {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// IsDebugEnabled reports whether debug logging is on, either via Setup or the
// QUESTDECK_DEBUG environment variable.
func IsDebugEnabled() bool {
	mu.RLock()
	d := debug
	mu.RUnlock()
	return d || os.Getenv(EnvDebug) == "true"
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	if IsDebugEnabled() {
		get().Debug(msg, args...)
	}
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Logger returns the underlying slog.Logger for advanced usage.
func Logger() *slog.Logger {
	return get()
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
