package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant returns a copy of ctx carrying the resolved tenant.
// The middleware sets it once per request; the value is treated as
// immutable for the remainder of request processing.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant was resolved.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(contextKey{}).(*Tenant)
	return t, ok && t != nil
}

// CurrentTenant returns the tenant from the context or ErrTenantNotDefined
// when the request was not resolved to one. Callers that can operate
// without a tenant should use FromContext instead.
func CurrentTenant(ctx context.Context) (*Tenant, error) {
	t, ok := FromContext(ctx)
	if !ok {
		return nil, ErrTenantNotDefined
	}
	return t, nil
}

// IDFromContext retrieves just the tenant ID from the context.
// Returns zero UUID and false if no tenant was resolved.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// IdentifierFromContext retrieves just the tenant identifier from the context.
func IdentifierFromContext(ctx context.Context) (string, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return t.Identifier, true
}

// LoggerExtractor returns a logger context extractor that annotates log
// records with the resolved tenant ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id.String()), true
		}
		return slog.Attr{}, false
	}
}
