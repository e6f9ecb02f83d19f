// Copyright (c) 2026 Meihe Villa. All rights reserved.
// Author: chiawei.lin.tw@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/chiaweilin/meihe/internal/auth"
	"github.com/chiaweilin/meihe/internal/dashboard"
	"github.com/chiaweilin/meihe/internal/heritage"
	"github.com/chiaweilin/meihe/internal/media"
	"github.com/chiaweilin/meihe/internal/news"
	"github.com/chiaweilin/meihe/internal/platform/config"
	"github.com/chiaweilin/meihe/internal/platform/constants"
	"github.com/chiaweilin/meihe/internal/platform/middleware"
	"github.com/chiaweilin/meihe/internal/timeline"
	"github.com/chiaweilin/meihe/internal/users"
	"github.com/chiaweilin/meihe/internal/visitinfo"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles session routes (login, logout, me).
	Auth *auth.Handler

	// Users manages admin accounts (superadmin only).
	Users *users.Handler

	// Heritage serves heritage sites and their categories.
	Heritage *heritage.Handler

	// News serves news and announcements.
	News *news.Handler

	// Timeline serves the historical timeline.
	Timeline *timeline.Handler

	// VisitInfo serves visitor information sections.
	VisitInfo *visitinfo.Handler

	// Media handles presigned uploads and the media library.
	Media *media.Handler

	// Dashboard serves admin content statistics.
	Dashboard *dashboard.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, sessions middleware.SessionChecker, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, sessions))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		h.Auth.RegisterRoutes(api)
		h.Users.RegisterRoutes(api)
		h.Heritage.RegisterRoutes(api)
		h.News.RegisterRoutes(api)
		h.Timeline.RegisterRoutes(api)
		h.VisitInfo.RegisterRoutes(api)
		h.Media.RegisterRoutes(api)
		h.Dashboard.RegisterRoutes(api)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
