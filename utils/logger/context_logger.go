package logger

import (
	"context"
	"log/slog"
)

// GlobalContext is the process-wide context logger, set by Init.
var GlobalContext *ContextLogger

type contextKey string

const (
	userIDKey    contextKey = "session.user.id"
	attemptIDKey contextKey = "session.attempt.id"
	authStageKey contextKey = "session.auth.stage"
)

// WithUserID binds the published user's subject id to the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// WithAttemptID binds the auth attempt correlation id to the context.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey, id)
}

// WithAuthStage binds the current lifecycle stage (sign_in, sign_up,
// federated, sign_out, restore) to the context.
func WithAuthStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, authStageKey, stage)
}

// ContextLogger emits records enriched with the session attributes bound
// to a context.
type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext returns a logger carrying every session attribute present
// in ctx.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger
	for _, key := range []contextKey{userIDKey, attemptIDKey, authStageKey} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			logger = logger.With(slog.String(string(key), v))
		}
	}
	return logger
}
