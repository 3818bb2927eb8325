// Package credentials issues and validates authentication tokens whose
// signing material can vary per tenant.
//
// The Issuer authenticates users (bcrypt-hashed passwords) and mints an
// HS256 access token plus an opaque refresh token. The Validator mirrors
// the issuer's parameter resolution exactly: both call
// ResolveSigningParams, which prefers the tenant's JWTAuthority override
// from the request context and falls back to the global JwtSettings.
// Because of that symmetry, the tenant resolution middleware must run
// before the bearer middleware in the request pipeline.
//
// Authentication failures are always the generic ErrInvalidCredentials;
// the package never reveals whether an email exists.
package credentials
