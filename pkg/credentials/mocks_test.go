package credentials_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/credentials"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// mockUserStore is an in-memory credentials.UserStore for package tests.
type mockUserStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*credentials.User
	hashes map[uuid.UUID][]byte
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:  make(map[uuid.UUID]*credentials.User),
		hashes: make(map[uuid.UUID][]byte),
	}
}

func (s *mockUserStore) CreateUser(ctx context.Context, user *credentials.User, passwordHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return credentials.ErrEmailAlreadyExists
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	s.hashes[user.ID] = passwordHash
	return nil
}

func (s *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*credentials.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, credentials.ErrUserNotFound
}

func (s *mockUserStore) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.hashes[userID]
	if !ok {
		return nil, credentials.ErrUserNotFound
	}
	return hash, nil
}

// mockTenantStore is a minimal tenant.Store for the middleware-chain tests.
type mockTenantStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*tenant.Tenant
}

func newMockTenantStore(tenants ...*tenant.Tenant) *mockTenantStore {
	s := &mockTenantStore{tenants: make(map[uuid.UUID]*tenant.Tenant)}
	for _, t := range tenants {
		cp := *t
		s.tenants[t.ID] = &cp
	}
	return s
}

func (s *mockTenantStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*tenant.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *mockTenantStore) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *mockTenantStore) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
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

func (s *mockTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *mockTenantStore) Update(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[t.ID]; !ok {
		return tenant.ErrTenantNotFound
	}
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *mockTenantStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenants[id]; !ok {
		return tenant.ErrTenantNotFound
	}
	delete(s.tenants, id)
	return nil
}