package credentials_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/credentials"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Exercises the full per-tenant credential flow through the HTTP
// middleware chain: tenant resolution first, then bearer validation
// under the resolved tenant's signing parameters.
func TestPerTenantCredentialFlow(t *testing.T) {
	t.Parallel()

	acme := &tenant.Tenant{
		ID:           uuid.New(),
		Identifier:   "acme",
		Name:         "Acme Inc",
		Active:       true,
		JWTAuthority: "acme-signing-secret",
	}

	store := newMockTenantStore(acme)
	tenants := tenant.NewService(store, tenant.NewInMemoryCache())

	issuer := newTestIssuer(t, newMockUserStore())
	validator := credentials.NewValidator(testSettings)

	// Login under the acme tenant context.
	acmeCtx := tenant.WithTenant(context.Background(), acme)
	cred, err := issuer.Register(acmeCtx, "alice@acme.test", "correct-horse")
	require.NoError(t, err)

	var seenEmail string
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := credentials.ClaimsFromContext(r.Context())
		seenEmail = claims.Email
		w.WriteHeader(http.StatusOK)
	})

	resolver := tenant.NewHeaderResolver("X-Tenant-ID")
	handler := tenant.Middleware(resolver, tenants)(
		credentials.Middleware(validator)(protected))

	t.Run("token verifies under the issuing tenant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-Tenant-ID", "acme")
		req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice@acme.test", seenEmail)
	})

	t.Run("token rejected without tenant context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token rejected under a different tenant", func(t *testing.T) {
		globex := &tenant.Tenant{
			ID:           uuid.New(),
			Identifier:   "globex",
			Name:         "Globex Corp",
			Active:       true,
			JWTAuthority: "globex-signing-secret",
		}
		require.NoError(t, store.Create(context.Background(), globex))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-Tenant-ID", "globex")
		req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
