package tenant

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/tenantkit/pkg/async"
)

// WarmupStats summarizes a cache warm-up run.
type WarmupStats struct {
	Loaded  int
	Skipped int
}

// WarmCache loads all active tenants from the store into the cache as a
// detached background task. It never blocks service readiness: the
// returned future can be awaited by tests or ignored entirely, and any
// failure is captured in the future and logged rather than propagated to
// the calling flow. Inactive tenants are skipped with a warning;
// duplicate-key collisions are logged, not treated as failures.
func (s *Service) WarmCache(ctx context.Context) *async.Future[WarmupStats] {
	return async.Run(ctx, func(ctx context.Context) (WarmupStats, error) {
		s.log.InfoContext(ctx, "loading tenants from store into cache")

		tenants, err := s.store.List(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "tenant cache warm-up failed", slog.Any("error", err))
			return WarmupStats{}, err
		}

		if len(tenants) == 0 {
			s.log.InfoContext(ctx, "no tenants found in store, skipping cache warm-up")
			return WarmupStats{}, nil
		}

		var stats WarmupStats
		for _, t := range tenants {
			if !t.Active {
				s.log.WarnContext(ctx, "skipping inactive tenant",
					slog.String("identifier", t.Identifier))
				stats.Skipped++
				continue
			}

			ok, err := s.cache.TryAdd(ctx, t)
			switch {
			case err != nil:
				s.log.ErrorContext(ctx, "failed to load tenant into cache",
					slog.String("identifier", t.Identifier), slog.Any("error", err))
				stats.Skipped++
			case !ok:
				s.log.WarnContext(ctx, "tenant already exists in cache",
					slog.String("identifier", t.Identifier), slog.String("tenant_id", t.ID.String()))
				stats.Skipped++
			default:
				s.log.InfoContext(ctx, "loaded tenant into cache",
					slog.String("identifier", t.Identifier), slog.String("tenant_id", t.ID.String()))
				stats.Loaded++
			}
		}

		s.log.InfoContext(ctx, "tenant cache warm-up completed",
			slog.Int("loaded", stats.Loaded), slog.Int("skipped", stats.Skipped))
		return stats, nil
	})
}
