// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

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
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/config"
	"github.com/losreyesdelusado/backend/internal/platform/constants"
	"github.com/losreyesdelusado/backend/internal/platform/metrics"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// # Handler Registry

// Registrar mounts a domain's routes, guarding the private ones.
type Registrar interface {
	RegisterRoutes(router chi.Router, guard *middleware.Guard)
}

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add an entry to Domains; no other change to server.go is required.
type Handlers struct {
	// Health serves /, /health and /ready.
	Health *HealthHandler

	// Domains are mounted in order: auth, users, catalog, media.
	Domains []Registrar
}

// RouterOptions carries the infrastructure the router is built from.
type RouterOptions struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Guard   *middleware.Guard

	// Origins allowed by CORS. "*" allows any.
	Origins []string

	// MediaDir is served read-only under /uploads when set.
	MediaDir string

	// RateLimitRPS and RateLimitBurst default to the package constants when zero.
	RateLimitRPS   float64
	RateLimitBurst int
}

// # Router

/*
NewRouter constructs the chi router with the full middleware chain and
registers all route groups.

Unknown paths answer 404 and known paths with the wrong method answer 405,
both in the standard error envelope. HEAD is served by the GET handlers.
*/
func NewRouter(ctx context.Context, opts RouterOptions, h Handlers) chi.Router {
	rps, burst := opts.RateLimitRPS, opts.RateLimitBurst
	if rps <= 0 {
		rps = constants.DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(chimw.CleanPath)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(opts.Logger, opts.Metrics))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(opts.Origins))
	r.Use(middleware.NewIPRateLimiter(ctx, rps, burst).Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.GetHead)

	r.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		respond.WriteError(writer, apperr.NotFound(apperr.MsgNotFound))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		respond.WriteError(writer, apperr.MethodNotAllowed())
	})

	// # Infrastructure Endpoints
	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.MediaDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", noListing(http.FileServer(http.Dir(opts.MediaDir)))))
	}

	// # Application API
	for _, domain := range h.Domains {
		domain.RegisterRoutes(r, opts.Guard)
	}

	return r
}

// noListing hides directory indexes of the media tree.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "" || strings.HasSuffix(request.URL.Path, "/") {
			respond.WriteError(writer, apperr.NotFound(apperr.MsgNotFound))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Server Initialization

// NewServer builds the router and the [http.Server] listening on cfg.ServerPort.
func NewServer(ctx context.Context, cfg *config.Config, opts RouterOptions, h Handlers) *Server {
	return &Server{
		log: opts.Logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           NewRouter(ctx, opts, h),
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
