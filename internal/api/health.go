// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/platform/constants"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
)

// healthCheckTimeout bounds each dependency ping.
const healthCheckTimeout = 2 * time.Second

// Check is a named dependency ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves the root status page and the container probes.
type HealthHandler struct {
	database Check
	extra    []Check
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

// NewHealthHandler builds the probes. database backs the root page; extra
// checks only join /ready. Checks with a nil Ping are skipped.
func NewHealthHandler(database Check, location *time.Location, logger *slog.Logger, extra ...Check) *HealthHandler {
	if location == nil {
		location = time.UTC
	}
	return &HealthHandler{
		database: database,
		extra:    extra,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterRoutes mounts GET / , /health and /ready.
func (handler *HealthHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.root)
	router.Get("/health", handler.liveness)
	router.Get("/ready", handler.readiness)
}

type databaseStatus struct {
	Online      bool   `json:"online"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

/*
root handles GET / with the service banner and a database probe.

Response:
  - 200: status "ok"
  - 503: status "degraded" when the database does not answer
*/
func (handler *HealthHandler) root(writer http.ResponseWriter, request *http.Request) {
	online := handler.run(request.Context(), handler.database) == nil

	status, code := "ok", http.StatusOK
	if !online {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, code, map[string]any{
		"service":   constants.ServiceName,
		"status":    status,
		"time":      handler.now().In(handler.location).Format(time.RFC3339),
		"client_ip": requestutil.ClientIP(request),
		"db": databaseStatus{
			Online:      online,
			Type:        "pgsql",
			Description: "PostgreSQL",
		},
	})
}

// liveness handles GET /health (Liveness probe).
func (handler *HealthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (Readiness probe).
func (handler *HealthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	checks := append([]Check{handler.database}, handler.extra...)
	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, check := range checks {
		if check.Ping == nil {
			continue
		}
		result := checkResult{Name: check.Name, IsOK: true}
		if err := handler.run(request.Context(), check); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
		}
		results = append(results, result)
	}

	responseStatus, httpStatus := "ready", http.StatusOK
	if !isSystemReady {
		responseStatus, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		"status": responseStatus,
		"checks": results,
	})
}

func (handler *HealthHandler) run(ctx context.Context, check Check) error {
	if check.Ping == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	err := check.Ping(ctx)
	if err != nil && handler.logger != nil {
		handler.logger.ErrorContext(ctx, "readiness_check_failed",
			slog.String("dependency", check.Name),
			slog.Any("error", err),
		)
	}
	return err
}
