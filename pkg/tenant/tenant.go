package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated customer boundary. The Identifier is the
// human-readable slug used for request resolution and is immutable after
// creation; ID is the opaque primary key.
type Tenant struct {
	ID         uuid.UUID `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedBy  string    `json:"updated_by,omitempty"`

	// Per-tenant signing overrides. When JWTAuthority is set, tokens for
	// this tenant are signed and validated with it instead of the global
	// secret; issuer and audience fall back field-wise to global settings.
	JWTAuthority string `json:"jwt_authority,omitempty"`
	JWTIssuer    string `json:"jwt_issuer,omitempty"`
	JWTAudience  string `json:"jwt_audience,omitempty"`
}

// Store is the authoritative persisted tenant registry.
// Implementations must enforce uniqueness of Identifier and Name.
type Store interface {
	// List returns all tenants, active or not.
	List(ctx context.Context) ([]*Tenant, error)

	// GetByID returns ErrTenantNotFound if no tenant has the given id.
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// GetByIdentifier returns ErrTenantNotFound if no tenant has the
	// given identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)

	// Create persists a new tenant. Returns ErrTenantAlreadyExists when
	// the identifier or name collides with an existing tenant.
	Create(ctx context.Context, t *Tenant) error

	// Update overwrites identifier, name, active flag and audit fields of
	// an existing tenant. Returns ErrTenantNotFound for an unknown id and
	// ErrTenantAlreadyExists when the new identifier collides with a
	// different tenant.
	Update(ctx context.Context, t *Tenant) error

	// Delete returns ErrTenantNotFound for an unknown id.
	Delete(ctx context.Context, id uuid.UUID) error
}
