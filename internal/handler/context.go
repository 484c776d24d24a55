package handlers

import "context"

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated admin attached to a request. Role is the
// role the token was issued with.
type Principal struct {
	AdminID  string
	Username string
	Role     string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
