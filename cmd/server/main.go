package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"hrms/internal/config"
	"hrms/internal/db"
	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/core"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/notifications"
	"hrms/internal/domain/payroll"
	"hrms/internal/domain/performance"
	"hrms/internal/domain/recruitment"
	"hrms/internal/domain/training"
	"hrms/internal/metrics"
	"hrms/internal/transport/http/api"
	attendancehandler "hrms/internal/transport/http/handlers/attendance"
	authhandler "hrms/internal/transport/http/handlers/auth"
	corehandler "hrms/internal/transport/http/handlers/core"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	notificationshandler "hrms/internal/transport/http/handlers/notifications"
	payrollhandler "hrms/internal/transport/http/handlers/payroll"
	performancehandler "hrms/internal/transport/http/handlers/performance"
	recruitmenthandler "hrms/internal/transport/http/handlers/recruitment"
	traininghandler "hrms/internal/transport/http/handlers/training"
	"hrms/internal/transport/http/middleware"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			logger.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(collector))
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

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		corehandler.NewHandler(core.NewStore(pool), cfg.DefaultPageSize, cfg.MaxPageSize).RegisterRoutes(r)
		attendancehandler.NewHandler(attendance.NewStore(pool)).RegisterRoutes(r)
		leavehandler.NewHandler(leave.NewStore(pool), notifications.NewStore(pool), logger).RegisterRoutes(r)
		payrollhandler.NewHandler(payroll.NewStore(pool)).RegisterRoutes(r)
		performancehandler.NewHandler(performance.NewStore(pool)).RegisterRoutes(r)
		traininghandler.NewHandler(training.NewStore(pool)).RegisterRoutes(r)
		recruitmenthandler.NewHandler(recruitment.NewStore(pool)).RegisterRoutes(r)
		notificationshandler.NewHandler(notifications.NewStore(pool)).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.Require(auth.ActionViewMetrics)).Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
			})
		}
	})

	logger.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
