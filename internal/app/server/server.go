package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gigmatch/internal/domain/audit"
	"gigmatch/internal/domain/auth"
	"gigmatch/internal/domain/booking"
	"gigmatch/internal/domain/matching"
	"gigmatch/internal/platform/config"
	"gigmatch/internal/platform/db"
	"gigmatch/internal/platform/jobs"
	"gigmatch/internal/platform/metrics"
	"gigmatch/internal/transport/http/api"
	authhandler "gigmatch/internal/transport/http/handlers/auth"
	bookinghandler "gigmatch/internal/transport/http/handlers/booking"
	matchinghandler "gigmatch/internal/transport/http/handlers/matching"
	"gigmatch/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
	Sweeper *jobs.Service
}

// New connects to the database, runs migrations and seed data when
// configured, and assembles the full router. The returned App is ready
// to serve; callers own the pool and close it via Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	collector := metrics.New()

	auditSvc := audit.New(pool)
	authSvc := auth.NewService(auth.NewStore(pool))
	matchingSvc := matching.NewService(matching.NewStore(pool))
	bookingSvc := booking.NewService(booking.NewStore(pool),
		booking.Location{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, cfg.JWTSecret, cfg.SessionTTL).RegisterRoutes(r)
		matchinghandler.NewHandler(matchingSvc).RegisterRoutes(r)
		bookinghandler.NewHandler(bookingSvc, auditSvc, collector).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.Get("/metrics", metricsHandler(collector))
		}
	})

	return &App{
		Config:  cfg,
		Pool:    pool,
		Router:  router,
		Metrics: collector,
		Sweeper: jobs.New(pool, cfg.NoShowInterval),
	}, nil
}

func metricsHandler(collector *metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	}
}

func (a *App) Close() {
	a.Pool.Close()
}

// Run blocks serving HTTP until the listener fails.
func Run() error {
	ctx := context.Background()
	app, err := New(ctx, config.Load())
	if err != nil {
		return err
	}
	defer app.Close()

	app.Sweeper.Start(ctx)

	slog.Info("server listening", "addr", app.Config.Addr, "env", app.Config.Environment)
	return http.ListenAndServe(app.Config.Addr, app.Router)
}
