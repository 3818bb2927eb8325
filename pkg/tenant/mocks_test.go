package tenant_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// mockStore is an in-memory tenant.Store used across the package tests.
type mockStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*tenant.Tenant
	listErr error
}

func newMockStore(tenants ...*tenant.Tenant) *mockStore {
	s := &mockStore{tenants: make(map[uuid.UUID]*tenant.Tenant)}
	for _, t := range tenants {
		cp := *t
		s.tenants[t.ID] = &cp
	}
	return s
}

func (s *mockStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*tenant.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *mockStore) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.Identifier == identifier {
			cp := *t
			return &cp, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *mockStore) Create(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if existing.Identifier == t.Identifier || existing.Name == t.Name {
			return tenant.ErrTenantAlreadyExists
		}
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *mockStore) Update(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tenants[t.ID]
	if !ok {
		return tenant.ErrTenantNotFound
	}
	for id, other := range s.tenants {
		if id != t.ID && other.Identifier == t.Identifier {
			return tenant.ErrTenantAlreadyExists
		}
	}
	existing.Identifier = t.Identifier
	existing.Name = t.Name
	existing.Active = t.Active
	existing.UpdatedAt = t.UpdatedAt
	existing.UpdatedBy = t.UpdatedBy
	return nil
}

func (s *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return tenant.ErrTenantNotFound
	}
	delete(s.tenants, id)
	return nil
}

// failingCache simulates a cache backend outage; every operation errors.
type failingCache struct{}

var errCacheDown = errors.New("cache backend unavailable")

func (failingCache) TryAdd(context.Context, *tenant.Tenant) (bool, error) {
	return false, errCacheDown
}
func (failingCache) TryUpdate(context.Context, *tenant.Tenant) (bool, error) {
	return false, errCacheDown
}
func (failingCache) TryRemove(context.Context, uuid.UUID) (bool, error) {
	return false, errCacheDown
}
func (failingCache) TryGet(context.Context, uuid.UUID) (*tenant.Tenant, bool) {
	return nil, false
}
func (failingCache) TryGetByIdentifier(context.Context, string) (*tenant.Tenant, bool) {
	return nil, false
}

func createTestTenant(identifier string, active bool) *tenant.Tenant {
	return &tenant.Tenant{
		ID:         uuid.New(),
		Identifier: identifier,
		Name:       "Tenant " + identifier,
		Active:     active,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}
