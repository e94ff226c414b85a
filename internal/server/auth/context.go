package auth

import "context"

type ctxKey string

const userIDKey ctxKey = "userID"

// WithUserID returns a child context carrying the authenticated user's
// identifier. The guard middleware calls this once per request; resolvers
// only ever read it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user's identifier. ok is
// false when the request carried no usable credential, which is not itself
// an error: unauthenticated queries are valid until an operation demands
// identity.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
