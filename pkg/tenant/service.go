package tenant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service coordinates the authoritative Store with the advisory Cache.
// Mutations hit the store first; only after a successful commit is the
// cache synchronized, best-effort. Cache failures are logged and
// swallowed - they never roll back or fail the originating mutation.
type Service struct {
	store Store
	cache Cache
	log   *slog.Logger
}

// ServiceOption configures a Service during construction.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for cache synchronization events.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a tenant service around the given store and cache.
func NewService(store Store, cache Cache, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		cache: cache,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all tenants from the store, active or not.
func (s *Service) List(ctx context.Context) ([]*Tenant, error) {
	return s.store.List(ctx)
}

// GetByID reads a tenant from the store by primary key.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.store.GetByID(ctx, id)
}

// GetByIdentifier reads a tenant from the store by its resolution slug.
func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	return s.store.GetByIdentifier(ctx, identifier)
}

// Create persists a new tenant and adds it to the cache when active.
// Assigns a fresh ID when none is set and stamps the audit timestamps.
func (s *Service) Create(ctx context.Context, t *Tenant) error {
	if !ValidIdentifier(t.Identifier) {
		return ErrInvalidIdentifier
	}

	if t.ID == (uuid.UUID{}) {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.store.Create(ctx, t); err != nil {
		return err
	}

	s.cacheAdd(ctx, t)
	return nil
}

// Update overwrites a tenant in the store and synchronizes the cache:
// active tenants are updated in place, tenants that became inactive are
// evicted so they can no longer be resolved.
func (s *Service) Update(ctx context.Context, t *Tenant) error {
	if !ValidIdentifier(t.Identifier) {
		return ErrInvalidIdentifier
	}

	t.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, t); err != nil {
		return err
	}

	if !t.Active {
		s.cacheRemove(ctx, t.ID)
		return nil
	}

	ok, err := s.cache.TryUpdate(ctx, t)
	switch {
	case err != nil:
		s.log.ErrorContext(ctx, "failed to update tenant in cache",
			slog.String("tenant_id", t.ID.String()), slog.Any("error", err))
	case !ok:
		// Entry was never cached (e.g. created while inactive); add it now.
		s.cacheAdd(ctx, t)
	default:
		s.log.InfoContext(ctx, "updated tenant in cache",
			slog.String("identifier", t.Identifier), slog.String("tenant_id", t.ID.String()))
	}
	return nil
}

// Delete removes a tenant from the store and evicts it from the cache.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.cacheRemove(ctx, id)
	return nil
}

// Resolve maps a request-supplied identifier to an active tenant using
// the cache-aside pattern: cache lookup first, read-through to the store
// on miss, populating the cache on the way back. Inactive tenants are
// never returned.
func (s *Service) Resolve(ctx context.Context, identifier string) (*Tenant, error) {
	if identifier == "" {
		return nil, ErrTenantNotDefined
	}

	if cached, ok := s.cache.TryGetByIdentifier(ctx, identifier); ok {
		if !cached.Active {
			return nil, ErrInactiveTenant
		}
		return cached, nil
	}

	t, err := s.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, ErrInactiveTenant
	}

	s.cacheAdd(ctx, t)
	return t, nil
}

// cacheAdd propagates a tenant into the cache, skipping inactive tenants.
// Failures are logged and swallowed.
func (s *Service) cacheAdd(ctx context.Context, t *Tenant) {
	if !t.Active {
		s.log.WarnContext(ctx, "skipping cache for inactive tenant",
			slog.String("identifier", t.Identifier))
		return
	}

	ok, err := s.cache.TryAdd(ctx, t)
	switch {
	case err != nil:
		s.log.ErrorContext(ctx, "failed to add tenant to cache",
			slog.String("identifier", t.Identifier), slog.Any("error", err))
	case !ok:
		s.log.WarnContext(ctx, "tenant already exists in cache",
			slog.String("identifier", t.Identifier), slog.String("tenant_id", t.ID.String()))
	default:
		s.log.InfoContext(ctx, "added tenant to cache",
			slog.String("identifier", t.Identifier), slog.String("tenant_id", t.ID.String()))
	}
}

// cacheRemove evicts a tenant from the cache. Failures are logged and swallowed.
func (s *Service) cacheRemove(ctx context.Context, id uuid.UUID) {
	ok, err := s.cache.TryRemove(ctx, id)
	switch {
	case err != nil:
		s.log.ErrorContext(ctx, "failed to remove tenant from cache",
			slog.String("tenant_id", id.String()), slog.Any("error", err))
	case !ok:
		s.log.WarnContext(ctx, "tenant not found in cache for removal",
			slog.String("tenant_id", id.String()))
	default:
		s.log.InfoContext(ctx, "removed tenant from cache",
			slog.String("tenant_id", id.String()))
	}
}

// IsNotFound reports whether err is the tenant not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTenantNotFound)
}
