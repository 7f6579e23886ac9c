// Package logging provides structured logging for the weekly CLI.
// It uses Go's standard library slog with text or JSON output.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	defaultLogger *slog.Logger
	loggerMu      sync.RWMutex

	// Debug reports whether debug records are written.
	Debug bool
)

func init() {
	// Commands print their own results; only warnings reach stderr by default.
	defaultLogger = slog.New(newHandler(DefaultConfig()))
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level // Minimum log level
	JSON      bool       // Use JSON output format
	Output    io.Writer  // Output destination (default: stderr)
	AddSource bool       // Include source file and line number
}

// DefaultConfig logs warnings and errors as text to stderr.
func DefaultConfig() Config {
	return Config{Level: slog.LevelWarn, Output: os.Stderr}
}

// DebugConfig logs everything as JSON with source locations.
func DebugConfig() Config {
	return Config{
		Level:     slog.LevelDebug,
		JSON:      true,
		Output:    os.Stderr,
		AddSource: true,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies WEEKLY_LOG_LEVEL
// (debug, info, warn, error) and WEEKLY_LOG_FORMAT (text, json).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if lvl, ok := ParseLevel(os.Getenv("WEEKLY_LOG_LEVEL")); ok {
		cfg.Level = lvl
	}
	if strings.EqualFold(os.Getenv("WEEKLY_LOG_FORMAT"), "json") {
		cfg.JSON = true
	}
	return cfg
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return lvl, false
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return lvl, false
	}
	return lvl, true
}

func newHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	if cfg.JSON {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

// Init replaces the package logger.
func Init(cfg Config) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = slog.New(newHandler(cfg))
	Debug = cfg.Level <= slog.LevelDebug
}

// InitDebug switches to DebugConfig.
func InitDebug() {
	Init(DebugConfig())
}

// Logger returns the current logger instance.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

func Info(msg string, args ...any)     { Logger().Info(msg, args...) }
func DebugLog(msg string, args ...any) { Logger().Debug(msg, args...) }
func Warn(msg string, args ...any)     { Logger().Warn(msg, args...) }
func Error(msg string, args ...any)    { Logger().Error(msg, args...) }

// InfoContext logs at INFO level with the invocation in ctx.
func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).InfoContext(ctx, msg, args...)
}

// DebugContext logs at DEBUG level with the invocation in ctx.
func DebugContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).DebugContext(ctx, msg, args...)
}

// Common structured logging fields.
const (
	KeyRequestID = "request_id"
	KeyCommand   = "cmd"
	KeyOperation = "op"
	KeyError     = "error"
	KeyTask      = "task"
	KeyDay       = "day"
	KeyPriority  = "priority"
	KeyCount     = "count"
	KeyBackend   = "backend"
)

// LogOperation logs a store operation at DEBUG level.
func LogOperation(op string, args ...any) {
	Logger().Debug("operation", append([]any{KeyOperation, op}, args...)...)
}
