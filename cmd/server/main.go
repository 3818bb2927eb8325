package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenantkit/modules/authapi"
	"github.com/dmitrymomot/tenantkit/pkg/config"
	"github.com/dmitrymomot/tenantkit/pkg/credentials"
	credpg "github.com/dmitrymomot/tenantkit/pkg/credentials/pgstore"
	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/redis"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
	tenantpg "github.com/dmitrymomot/tenantkit/pkg/tenant/pgstore"
)

type serverConfig struct {
	LogFormat  string `env:"LOG_FORMAT" envDefault:"json"`
	RedisCache bool   `env:"TENANT_CACHE_REDIS" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		srvCfg    serverConfig
		httpCfg   httpserver.Config
		pgCfg     pg.Config
		redisCfg  redis.Config
		tenantCfg tenant.Config
		jwtCfg    credentials.JwtSettings
	)
	config.MustLoad(&srvCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&tenantCfg)
	config.MustLoad(&jwtCfg)

	log := logger.New(
		logger.WithFormat(logger.Format(srvCfg.LogFormat)),
		logger.WithService("tenantkit"),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	log.InfoContext(ctx, "postgres connected")

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// The tenant cache is process-local by default; Redis-backed when the
	// deployment runs several replicas behind one cache.
	cache := tenant.NewInMemoryCache()
	healthchecks := []func(context.Context) error{pg.Healthcheck(pool)}
	if srvCfg.RedisCache {
		config.MustLoad(&redisCfg)
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()
		cache = tenant.NewRedisCache(client, redisCfg.KeyPrefix)
		healthchecks = append(healthchecks, redis.Healthcheck(client))
		log.InfoContext(ctx, "redis connected")
	}

	tenants := tenant.NewService(tenantpg.New(pool), cache, tenant.WithLogger(log))

	// Detached warm-up: service readiness never waits on it, failures are
	// logged by the task itself.
	tenants.WarmCache(ctx)

	resolver, err := tenant.FromConfig(tenantCfg)
	if err != nil {
		return fmt.Errorf("tenant resolver: %w", err)
	}

	issuer := credentials.NewIssuer(credpg.New(pool), jwtCfg, credentials.WithIssuerLogger(log))
	validator := credentials.NewValidator(jwtCfg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/health", httpserver.HealthHandler(healthchecks...))

	// Tenant resolution runs before anything that needs signing
	// parameters; bearer validation depends on it.
	r.Group(func(r chi.Router) {
		r.Use(tenant.Middleware(resolver, tenants, tenant.WithSkipPaths("/health")))
		r.Mount("/", authapi.NewService(issuer, log).Router())

		r.Group(func(r chi.Router) {
			r.Use(credentials.Middleware(validator))
			r.Get("/me", meHandler)
		})
	})

	return httpserver.Run(ctx, httpCfg, r, log)
}

// meHandler echoes the authenticated subject; it exists so deployments
// can smoke-test the full resolve-then-validate pipeline.
func meHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := credentials.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = fmt.Fprintf(w, `{"subject":%q,"email":%q}`, claims.Subject, claims.Email)
}
