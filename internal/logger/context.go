package logger

import (
	"context"

	"littlelemon/internal/utils"

	"go.uber.org/zap"
)

type ctxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

// FromCtx scopes the global logger to the request: its id and, once the
// token is verified, the caller.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		l = l.With(
			zap.Uint("user_id", userID),
			zap.String("username", utils.GetUsernameFromContext(ctx)),
		)
	}
	return l
}
