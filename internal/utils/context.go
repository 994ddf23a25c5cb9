package utils

import "context"

type ctxKey string

const (
	identityKey        ctxKey = "identity"
	sessionIDKey       ctxKey = "session_id"
	internalRequestKey ctxKey = "internal_request"
)

const adminRole = "ADMIN"

// WithInternalRequest marks calls that originate from trusted tooling (CLIs,
// migrations) rather than from an HTTP client.
func WithInternalRequest(ctx context.Context) context.Context {
	return context.WithValue(ctx, internalRequestKey, true)
}

func IsInternalRequest(ctx context.Context) bool {
	v, _ := ctx.Value(internalRequestKey).(bool)
	return v
}

// WithSessionID stores the anonymous session id used as the cart and
// wishlist key for visitors who are not logged in.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func GetSessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}
