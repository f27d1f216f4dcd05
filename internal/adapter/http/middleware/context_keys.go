package middleware

import "context"

// ContextKey is a private type for request context keys.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user id set by JWTAuth.
	UserIDCtxKey = ContextKey("user_id")
	// UserNameCtxKey holds the authenticated display name, when the token carries one.
	UserNameCtxKey = ContextKey("user_name")
	// RequestIDCtxKey holds the id assigned by RequestLogger.
	RequestIDCtxKey = ContextKey("request_id")
)

// Identity returns the authenticated user, ok is false for anonymous requests.
func Identity(ctx context.Context) (userID, userName string, ok bool) {
	userID, _ = ctx.Value(UserIDCtxKey).(string)
	userName, _ = ctx.Value(UserNameCtxKey).(string)
	return userID, userName, userID != ""
}

// WithIdentity stores an authenticated user on ctx.
func WithIdentity(ctx context.Context, userID, userName string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, UserNameCtxKey, userName)
}

// RequestID returns the id of the current request or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDCtxKey).(string)
	return id
}
