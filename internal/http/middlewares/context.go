package middlewares

import "context"

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxRequestIDKey ctxKey = "request_id"
)

// Principal is the authenticated caller, resolved from a verified token.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

// PrincipalFrom returns the caller stored by RequireAuth.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipalKey).(Principal)
	return p, ok && p.UserID != ""
}

// UserIDFrom is a shortcut for PrincipalFrom(ctx).UserID; empty when unauthenticated.
func UserIDFrom(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.UserID
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID returns the id assigned by WithRequestID.
func GetRequestID(ctx context.Context) string {
	s, _ := ctx.Value(ctxRequestIDKey).(string)
	return s
}
