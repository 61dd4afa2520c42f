// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package metrics exposes Prometheus instrumentation for the API.

Collectors are registered on an explicit registry so tests can build as many
servers as they like without duplicate-registration panics. Every method is
safe on a nil *Metrics, which disables instrumentation.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "losreyes"

// Outcomes recorded by [Metrics.LoginAttempt].
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid_credentials"
	LoginError   = "error"
)

// Reasons recorded by [Metrics.GuardRejected].
const (
	RejectMissingToken = "missing_token"
	RejectInvalidToken = "invalid_token"
	RejectRevoked      = "revoked"
	RejectUnknownUser  = "unknown_user"
	RejectRole         = "role_denied"
	RejectStoreError   = "store_error"
)

// Metrics groups the collectors of the process.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	loginAttempts   *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
	tokensRevoked   prometheus.Counter
}

// New registers every collector on a fresh registry, including Go runtime and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(registry, registry)
}

// NewWithRegistry registers the API collectors on reg and serves gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,

		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),

		guardRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_guard_rejections_total",
			Help:      "Requests rejected by the auth guard, by reason.",
		}, []string{"reason"}),

		tokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_tokens_revoked_total",
			Help:      "Tokens added to the revocation list.",
		}),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, status).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(seconds)
}

// LoginAttempt counts a login by outcome.
func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// GuardRejected counts a guard rejection by reason.
func (m *Metrics) GuardRejected(reason string) {
	if m == nil {
		return
	}
	m.guardRejections.WithLabelValues(reason).Inc()
}

// TokenRevoked counts one revocation.
func (m *Metrics) TokenRevoked() {
	if m == nil {
		return
	}
	m.tokensRevoked.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
