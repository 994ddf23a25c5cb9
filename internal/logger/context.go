package logger

import (
	"context"

	"sheenclassics/internal/utils"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger annotated with whatever request identity
// the context carries: request id, authenticated user and anonymous session.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()

	var fields []zap.Field
	if reqID := RequestIDFrom(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		fields = append(fields, zap.Uint("user_id", userID))
	}
	if sid := utils.GetSessionIDFromContext(ctx); sid != "" {
		fields = append(fields, zap.String("session_id", sid))
	}

	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
