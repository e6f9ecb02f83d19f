// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

// Command api is the entry point for the Meihe Villa CMS API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect to the S3-compatible object store.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chiaweilin/meihe/internal/api"
	"github.com/chiaweilin/meihe/internal/auth"
	"github.com/chiaweilin/meihe/internal/dashboard"
	"github.com/chiaweilin/meihe/internal/heritage"
	"github.com/chiaweilin/meihe/internal/media"
	"github.com/chiaweilin/meihe/internal/media/policy"
	"github.com/chiaweilin/meihe/internal/news"
	"github.com/chiaweilin/meihe/internal/platform/config"
	"github.com/chiaweilin/meihe/internal/platform/constants"
	"github.com/chiaweilin/meihe/internal/platform/migration"
	"github.com/chiaweilin/meihe/internal/platform/objectstore"
	pgstore "github.com/chiaweilin/meihe/internal/platform/postgres"
	redisstore "github.com/chiaweilin/meihe/internal/platform/redis"
	"github.com/chiaweilin/meihe/internal/platform/sec"
	"github.com/chiaweilin/meihe/internal/timeline"
	"github.com/chiaweilin/meihe/internal/users"
	"github.com/chiaweilin/meihe/internal/visitinfo"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Object Store ───────────────────────────────────────────────────
	bucket, err := objectstore.New(startupCtx, objectstore.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
	}, log)
	must(log, err, "connect to object store")

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckObjectStore: func() error {
			return bucket.Ping(context.Background())
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	sessionStore := auth.NewRedisSessionStore(rdb, log)

	userRepository := users.NewRepository(pool)
	userService := users.NewService(userRepository, log)
	userHandler := users.NewHandler(userService)

	authService := auth.NewService(userRepository, jwtSvc, sessionStore, log)
	authHandler := auth.NewHandler(authService, auth.CookieSettings{
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
	})

	heritageRepository := heritage.NewRepository(pool)
	heritageService := heritage.NewService(heritageRepository, heritageRepository, log)
	heritageHandler := heritage.NewHandler(heritageService)

	newsService := news.NewService(news.NewRepository(pool), log)
	newsHandler := news.NewHandler(newsService)

	timelineService := timeline.NewService(timeline.NewRepository(pool), log)
	timelineHandler := timeline.NewHandler(timelineService)

	visitInfoService := visitinfo.NewService(visitinfo.NewRepository(pool), log)
	visitInfoHandler := visitinfo.NewHandler(visitInfoService)

	mediaService := media.NewService(
		media.NewRepository(pool),
		bucket,
		policy.URLResolver{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			CDNDomain: cfg.CDNDomain,
		},
		time.Duration(cfg.PresignExpirySeconds)*time.Second,
		log,
	)
	mediaHandler := media.NewHandler(mediaService)

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), rdb, log)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Users:     userHandler,
		Heritage:  heritageHandler,
		News:      newsHandler,
		Timeline:  timelineHandler,
		VisitInfo: visitInfoHandler,
		Media:     mediaHandler,
		Dashboard: dashboardHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, sessionStore, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
