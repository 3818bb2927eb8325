package tenant

import (
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware that resolves the tenant for each
// inbound request and stores it in the request context. It must run
// before any middleware that validates credentials, since token
// validation parameters depend on the resolved tenant.
func Middleware(resolver Resolver, service *Service, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		errorHandler:  defaultErrorHandler,
		requireTenant: false,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			// No identifier on the request: pass through unresolved unless
			// the route set demands a tenant.
			if identifier == "" {
				if cfg.requireTenant {
					cfg.errorHandler(w, r, ErrTenantNotDefined)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			t, err := service.Resolve(r.Context(), identifier)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant creates middleware that rejects requests lacking a
// resolved tenant. Protects routes that cannot operate without one.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrTenantNotDefined)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
