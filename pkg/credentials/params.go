package credentials

import (
	"context"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// SigningParams are the resolved token parameters for one request:
// the symmetric signing key and the issuer/audience the token must carry.
type SigningParams struct {
	Key      []byte
	Issuer   string
	Audience string
}

// ResolveSigningParams picks the signing parameters for the current
// request. A tenant in context with a JWTAuthority override yields
// tenant-specific parameters, with issuer and audience falling back
// field-wise to the global settings; otherwise the globals apply.
//
// Issuance and validation both call this function, which is what makes
// tokens signed under a tenant key verifiable: the validator resolves
// the tenant context identically to the issuer. The absence of a tenant
// is deliberately not an error here.
func ResolveSigningParams(ctx context.Context, settings JwtSettings) SigningParams {
	params := SigningParams{
		Key:      []byte(settings.Secret),
		Issuer:   settings.Issuer,
		Audience: settings.Audience,
	}

	t, ok := tenant.FromContext(ctx)
	if !ok || t.JWTAuthority == "" {
		return params
	}

	params.Key = []byte(t.JWTAuthority)
	if t.JWTIssuer != "" {
		params.Issuer = t.JWTIssuer
	}
	if t.JWTAudience != "" {
		params.Audience = t.JWTAudience
	}
	return params
}
