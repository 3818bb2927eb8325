package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found in the store.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantAlreadyExists is returned when creating or renaming a tenant
	// would collide with another tenant's identifier or name.
	ErrTenantAlreadyExists = errors.New("tenant already exists")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrTenantNotDefined is returned when a tenant is required but the
	// request could not be resolved to one.
	ErrTenantNotDefined = errors.New("tenant is not defined")

	// ErrInactiveTenant is returned when trying to resolve an inactive tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrUnknownStrategy is returned when the configured resolution
	// strategy is not recognized.
	ErrUnknownStrategy = errors.New("unknown tenant resolution strategy")
)
