// Package app assembles the HTTP surface: feature services over one pgx pool, the shared
// middleware chain and the /api/v1 routes.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-editions/internal/common"
	"github.com/noah-isme/backend-editions/internal/config"
	"github.com/noah-isme/backend-editions/internal/customer"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/edition"
	"github.com/noah-isme/backend-editions/internal/editioningredient"
	"github.com/noah-isme/backend-editions/internal/health"
	"github.com/noah-isme/backend-editions/internal/ingredient"
	"github.com/noah-isme/backend-editions/internal/obs"
	"github.com/noah-isme/backend-editions/internal/purchase"
	"github.com/noah-isme/backend-editions/internal/ratelimit"
	"github.com/noah-isme/backend-editions/internal/sale"
	"github.com/noah-isme/backend-editions/internal/security"
)

// Deps are the process-wide resources built in main.
type Deps struct {
	Config *config.Config
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Logger zerolog.Logger
	// Registry receives HTTP metrics and backs /metrics. nil means the default registry.
	Registry *prometheus.Registry
	Tracing  bool
}

func (d Deps) registerer() prometheus.Registerer {
	if d.Registry == nil {
		return prometheus.DefaultRegisterer
	}
	return d.Registry
}

func (d Deps) gatherer() prometheus.Gatherer {
	if d.Registry == nil {
		return prometheus.DefaultGatherer
	}
	return d.Registry
}

// NewRouter wires every handler onto a chi router.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logger := d.Logger
	queries := dbgen.New(d.Pool)

	defaultStrategy, _ := editioningredient.ParseStrategy(cfg.ReconcileDefaultStrategy)
	defaultMode, _ := editioningredient.ParseMode(cfg.ReconcileDefaultMode)

	customerHandler := &customer.Handler{Service: &customer.Service{Q: queries}, DefaultLimit: cfg.ListDefaultLimit, MaxLimit: cfg.ListMaxLimit}
	ingredientHandler := &ingredient.Handler{Service: &ingredient.Service{Q: queries}, DefaultLimit: cfg.ListDefaultLimit, MaxLimit: cfg.ListMaxLimit}
	editionHandler := &edition.Handler{Service: &edition.Service{Q: queries, Logger: &logger}, DefaultLimit: cfg.ListDefaultLimit, MaxLimit: cfg.ListMaxLimit}
	purchaseHandler := &purchase.Handler{Service: &purchase.Service{Q: queries}, DefaultLimit: cfg.ListDefaultLimit, MaxLimit: cfg.ListMaxLimit}
	saleHandler := &sale.Handler{
		Service: &sale.Service{
			Pool:    d.Pool,
			Q:       queries,
			Queries: func(tx pgx.Tx) sale.Store { return dbgen.New(tx) },
			Logger:  &logger,
		},
		DefaultLimit: cfg.ListDefaultLimit,
		MaxLimit:     cfg.ListMaxLimit,
	}
	ledgerHandler := &editioningredient.Handler{
		Service: &editioningredient.Service{Q: queries, Logger: &logger},
		Reconciler: &editioningredient.Reconciler{
			Pool:    d.Pool,
			Queries: editioningredient.TxQueries,
			Logger:  &logger,
		},
		DefaultLimit:    cfg.ListDefaultLimit,
		MaxLimit:        cfg.ListMaxLimit,
		DefaultStrategy: defaultStrategy,
		DefaultMode:     defaultMode,
	}

	idem := common.Idem{R: d.Redis, TTL: cfg.IdempotencyTTL}
	limiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: d.Redis, Prefix: "ratelimit:"},
		Config:  ratelimit.Config{Key: ratelimit.ClientKey, Window: cfg.RateLimitWindow, Max: cfg.RateLimitMax},
		OnError: func(err error) { logger.Warn().Err(err).Msg("rate limiter unavailable") },
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	if d.Tracing {
		r.Use(obs.TracingMiddleware(cfg.Obs.ServiceName))
	}
	if cfg.Obs.EnablePrometheus {
		r.Use(obs.HTTPObs{Metrics: obs.NewHTTPMetrics(cfg.Obs.MetricsNamespace, cfg.Obs.MetricsBuckets, d.registerer())}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", common.IdempotencyHeader},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{Enable: true, EnableHSTS: cfg.AppEnv == "production"}.Middleware)

	if cfg.Obs.EnablePrometheus {
		r.Handle("/metrics", promhttp.HandlerFor(d.gatherer(), promhttp.HandlerOpts{}))
	}

	healthHandler := health.Handler{
		Checker:      health.Probe{DB: d.Pool, Redis: d.Redis},
		DBTimeout:    cfg.Health.DBTimeout,
		RedisTimeout: cfg.Health.RedisTimeout,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)
		v.Use(limiter.Middleware)
		post := v.With(idem.Middleware)

		v.Get("/customers", customerHandler.List)
		post.Post("/customers", customerHandler.Create)
		v.Get("/customers/{customerID}", customerHandler.Get)
		v.Patch("/customers/{customerID}", customerHandler.Update)
		v.Delete("/customers/{customerID}", customerHandler.Delete)

		v.Get("/editions", editionHandler.List)
		post.Post("/editions", editionHandler.Create)
		v.Get("/editions/{editionID}", editionHandler.Get)
		v.Patch("/editions/{editionID}", editionHandler.Update)
		v.Delete("/editions/{editionID}", editionHandler.Delete)

		v.Get("/ingredients", ingredientHandler.List)
		post.Post("/ingredients", ingredientHandler.Create)
		v.Get("/ingredients/{ingredientID}", ingredientHandler.Get)
		v.Patch("/ingredients/{ingredientID}", ingredientHandler.Update)
		v.Delete("/ingredients/{ingredientID}", ingredientHandler.Delete)

		v.Get("/purchases", purchaseHandler.List)
		post.Post("/purchases", purchaseHandler.Create)
		v.Get("/purchases/{purchaseID}", purchaseHandler.Get)
		v.Patch("/purchases/{purchaseID}", purchaseHandler.Update)
		v.Delete("/purchases/{purchaseID}", purchaseHandler.Delete)

		v.Get("/edition_ingredients", ledgerHandler.ListAll)
		v.Get("/edition_ingredients/entries/{entryID}", ledgerHandler.Get)
		v.Patch("/edition_ingredients/entries/{entryID}", ledgerHandler.Update)
		v.Delete("/edition_ingredients/entries/{entryID}", ledgerHandler.Delete)
		v.Get("/edition_ingredients/{editionID}", ledgerHandler.ListForEdition)
		post.Post("/edition_ingredients/{editionID}", ledgerHandler.Reconcile)

		v.Get("/sales", saleHandler.List)
		post.Post("/sales", saleHandler.Create)
		v.Get("/sales/{saleID}", saleHandler.Get)
		v.Patch("/sales/{saleID}", saleHandler.Update)
		v.Delete("/sales/{saleID}", saleHandler.Delete)
	})

	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
