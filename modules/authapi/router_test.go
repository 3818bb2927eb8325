package authapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/tenantkit/modules/authapi"
	"github.com/dmitrymomot/tenantkit/pkg/credentials"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

type memUserStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*credentials.User
	hashes map[uuid.UUID][]byte
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users:  make(map[uuid.UUID]*credentials.User),
		hashes: make(map[uuid.UUID][]byte),
	}
}

func (s *memUserStore) CreateUser(ctx context.Context, user *credentials.User, passwordHash []byte) error {
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

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (*credentials.User, error) {
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

func (s *memUserStore) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.hashes[userID]
	if !ok {
		return nil, credentials.ErrUserNotFound
	}
	return hash, nil
}

func newTestRouter() http.Handler {
	settings := credentials.JwtSettings{
		Secret:      "router-test-secret",
		Issuer:      "tenantkit",
		Audience:    "tenantkit",
		ExpiryHours: 1,
	}
	issuer := credentials.NewIssuer(newMemUserStore(), settings,
		credentials.WithBcryptCost(bcrypt.MinCost))
	return authapi.NewService(issuer, nil).Router()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns credential", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter()

		rec := postJSON(t, router, "/auth/register",
			`{"email":"alice@example.com","password":"correct-horse"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var cred credentials.Credential
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cred))
		assert.NotEmpty(t, cred.AccessToken)
		assert.NotEmpty(t, cred.RefreshToken)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter()

		body := `{"email":"alice@example.com","password":"correct-horse"}`
		require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register", body).Code)
		assert.Equal(t, http.StatusConflict, postJSON(t, router, "/auth/register", body).Code)
	})

	t.Run("weak password returns 422", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestRouter(), "/auth/register",
			`{"email":"alice@example.com","password":"short"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestRouter(), "/auth/register", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter()
		body := `{"email":"alice@example.com","password":"correct-horse"}`
		require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register", body).Code)

		rec := postJSON(t, router, "/auth/login", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var cred credentials.Credential
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cred))
		assert.NotEmpty(t, cred.AccessToken)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter()
		require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register",
			`{"email":"alice@example.com","password":"correct-horse"}`).Code)

		rec := postJSON(t, router, "/auth/login",
			`{"email":"alice@example.com","password":"wrong-horse"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email returns 401", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestRouter(), "/auth/login",
			`{"email":"nobody@example.com","password":"correct-horse"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCurrentTenantEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns resolved tenant", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter()

		acme := &tenant.Tenant{
			ID:         uuid.New(),
			Identifier: "acme",
			Name:       "Acme Inc",
			Active:     true,
		}
		req := httptest.NewRequest(http.MethodGet, "/tenant", nil)
		req = req.WithContext(tenant.WithTenant(req.Context(), acme))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got tenant.Tenant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "acme", got.Identifier)
	})

	t.Run("204 when unresolved", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/tenant", nil)
		rec := httptest.NewRecorder()
		newTestRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
