package credentials

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Validator checks inbound bearer tokens against the same key/issuer/
// audience resolution order the Issuer uses. Tenant resolution must have
// completed before validation runs: a token signed under a tenant key is
// only verifiable when the validator sees the same tenant context.
type Validator struct {
	settings JwtSettings
}

// NewValidator creates a token validator with the given global defaults.
func NewValidator(settings JwtSettings) *Validator {
	return &Validator{settings: settings}
}

// Validate verifies the token's signature, algorithm, issuer, audience
// and expiry under the parameters resolved from ctx. Returns the parsed
// claims on success, ErrTokenExpired for stale tokens, and
// ErrTokenInvalid for every other failure mode.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	params := ResolveSigningParams(ctx, v.settings)

	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return params.Key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(params.Issuer),
		jwt.WithAudience(params.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
