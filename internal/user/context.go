package user

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the authenticated user's id.
func NewContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

func IDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKey{}).(string)
	return userID, ok && userID != ""
}
