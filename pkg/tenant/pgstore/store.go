// Package pgstore implements the tenant.Store contract on PostgreSQL.
package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Store is a pgx-backed tenant registry. Uniqueness of identifier and
// name is enforced by database constraints; mutations are atomic within
// single statements.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a tenant store over the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const tenantColumns = `id, identifier, name, active,
	created_at, created_by, updated_at, updated_by,
	jwt_authority, jwt_issuer, jwt_audience`

func (s *Store) List(ctx context.Context) ([]*tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	t, err := scanTenant(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by id: %w", err)
	}
	return t, nil
}

func (s *Store) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE identifier = $1`, identifier)
	t, err := scanTenant(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by identifier: %w", err)
	}
	return t, nil
}

func (s *Store) Create(ctx context.Context, t *tenant.Tenant) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.Identifier, t.Name, t.Active,
		t.CreatedAt, nullable(t.CreatedBy), t.UpdatedAt, nullable(t.UpdatedBy),
		nullable(t.JWTAuthority), nullable(t.JWTIssuer), nullable(t.JWTAudience),
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return tenant.ErrTenantAlreadyExists
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, t *tenant.Tenant) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tenants
		SET identifier = $2, name = $3, active = $4, updated_at = $5, updated_by = $6
		WHERE id = $1`,
		t.ID, t.Identifier, t.Name, t.Active, t.UpdatedAt, nullable(t.UpdatedBy),
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return tenant.ErrTenantAlreadyExists
		}
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// row abstracts pgx.Row / pgx.Rows for shared scanning.
type row interface {
	Scan(dest ...any) error
}

func scanTenant(r row) (*tenant.Tenant, error) {
	var (
		t                           tenant.Tenant
		createdBy, updatedBy        *string
		authority, issuer, audience *string
	)
	if err := r.Scan(
		&t.ID, &t.Identifier, &t.Name, &t.Active,
		&t.CreatedAt, &createdBy, &t.UpdatedAt, &updatedBy,
		&authority, &issuer, &audience,
	); err != nil {
		return nil, err
	}
	t.CreatedBy = deref(createdBy)
	t.UpdatedBy = deref(updatedBy)
	t.JWTAuthority = deref(authority)
	t.JWTIssuer = deref(issuer)
	t.JWTAudience = deref(audience)
	return &t, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
