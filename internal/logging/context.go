package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// invocationKey is the context key of the current Invocation.
type invocationKey struct{}

// Invocation identifies one run of a weekly command. Every log line
// written on its behalf carries the request ID and, when known, the
// command path.
type Invocation struct {
	RequestID string
	Command   string
}

// attrs returns the log attributes of inv.
func (inv Invocation) attrs() []any {
	var args []any
	if inv.RequestID != "" {
		args = append(args, KeyRequestID, inv.RequestID)
	}
	if inv.Command != "" {
		args = append(args, KeyCommand, inv.Command)
	}
	return args
}

// GenerateRequestID creates a new time-ordered request ID.
func GenerateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// invocationFrom returns the Invocation stored in ctx, if any.
func invocationFrom(ctx context.Context) Invocation {
	if ctx == nil {
		return Invocation{}
	}
	inv, _ := ctx.Value(invocationKey{}).(Invocation)
	return inv
}

// WithRequestID returns a copy of ctx whose invocation has requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	inv := invocationFrom(ctx)
	inv.RequestID = requestID
	return context.WithValue(ctx, invocationKey{}, inv)
}

// WithCommand returns a copy of ctx whose invocation runs command.
func WithCommand(ctx context.Context, command string) context.Context {
	inv := invocationFrom(ctx)
	inv.Command = command
	return context.WithValue(ctx, invocationKey{}, inv)
}

// NewRequestContext starts an invocation with a fresh request ID.
func NewRequestContext() context.Context {
	return WithRequestID(context.Background(), GenerateRequestID())
}

// RequestIDFromContext returns the request ID, or "" when ctx has none.
func RequestIDFromContext(ctx context.Context) string {
	return invocationFrom(ctx).RequestID
}

// CommandFromContext returns the command path, or "" when ctx has none.
func CommandFromContext(ctx context.Context) string {
	return invocationFrom(ctx).Command
}

// LoggerFromContext returns the package logger annotated with the
// invocation stored in ctx.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if args := invocationFrom(ctx).attrs(); len(args) > 0 {
		return Logger().With(args...)
	}
	return Logger()
}

// ContextLogger logs with a fixed context, so handlers see it on every
// record.
type ContextLogger struct {
	ctx    context.Context
	logger *slog.Logger
}

// FromContext creates a ContextLogger for ctx.
func FromContext(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: LoggerFromContext(ctx)}
}

// With returns a ContextLogger with additional attributes.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.logger.With(args...)}
}

func (cl *ContextLogger) Info(msg string, args ...any)  { cl.log(slog.LevelInfo, msg, args) }
func (cl *ContextLogger) Debug(msg string, args ...any) { cl.log(slog.LevelDebug, msg, args) }
func (cl *ContextLogger) Warn(msg string, args ...any)  { cl.log(slog.LevelWarn, msg, args) }
func (cl *ContextLogger) Error(msg string, args ...any) { cl.log(slog.LevelError, msg, args) }

func (cl *ContextLogger) log(level slog.Level, msg string, args []any) {
	cl.logger.Log(cl.ctx, level, msg, args...)
}

// RequestID returns the request ID of the logger's invocation.
func (cl *ContextLogger) RequestID() string {
	return RequestIDFromContext(cl.ctx)
}

// Slog returns the underlying logger, for packages that take a
// *slog.Logger.
func (cl *ContextLogger) Slog() *slog.Logger {
	return cl.logger
}
