package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	userKey      ctxKey = "user"
)

type userFields struct {
	id   string
	role string
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithUser tags every later FromCtx logger with the caller's identity.
func WithUser(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, userKey, userFields{id: userID, role: role})
}

// FromCtx returns logger with request_id and, when known, user_id and role.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if u, ok := ctx.Value(userKey).(userFields); ok {
		l = l.With(zap.String("user_id", u.id), zap.String("role", u.role))
	}
	return l
}
