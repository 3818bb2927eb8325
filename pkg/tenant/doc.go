// Package tenant provides multi-tenancy support through request-time
// tenant resolution, an authoritative tenant registry, and a synchronized
// lookup cache.
//
// The package is built around four pieces:
//
//  1. Resolvers extract a tenant identifier from HTTP requests using the
//     configured strategy (static, host, or header based).
//  2. Store is the persisted, authoritative tenant registry.
//  3. Cache mirrors active tenants for fast lookups with atomic per-key
//     TryAdd/TryUpdate/TryRemove operations; it is advisory, never the
//     system of record.
//  4. Service ties store and cache together: mutations go through the
//     store first and are propagated to the cache best-effort, and
//     Resolve performs cache-aside lookups for the middleware.
//
// # Usage
//
//	store := pgstore.New(pool)
//	svc := tenant.NewService(store, tenant.NewInMemoryCache(),
//		tenant.WithLogger(log))
//
//	// Warm the cache in the background; never blocks readiness.
//	svc.WarmCache(ctx)
//
//	resolver, err := tenant.FromConfig(cfg)
//	if err != nil {
//		// invalid strategy configuration
//	}
//	router.Use(tenant.Middleware(resolver, svc))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, err := tenant.CurrentTenant(r.Context())
//		if err != nil {
//			// request was not resolved to a tenant
//		}
//		_ = t
//	}
//
// # Deployment modes
//
// With Config.IsMultiTenant disabled, every request resolves to the
// single configured identifier regardless of strategy. The mode switch
// happens at resolver construction, so strategy implementations carry no
// mode conditionals.
package tenant
