package credentials

import "context"

type claimsContextKey struct{}

// WithClaims stores validated access claims in the context.
func WithClaims(ctx context.Context, claims *AccessClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext retrieves validated access claims from the context.
// Returns nil, false for unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (*AccessClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*AccessClaims)
	return claims, ok && claims != nil
}
