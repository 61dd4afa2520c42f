// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package middleware provides the cross-cutting HTTP processing chain.

It acts as a series of decorators around the standard http.Handler, injecting
traceability, safety, and security into every request lifecycle.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: structured activity logging (slog) and Prometheus instrumentation.
  - Limit: per-IP rate limiting and CORS.
  - Safe: panic recovery to prevent server crashes.
  - Auth: the bearer-token [Guard] and its role primitives.
*/
package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/constants"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/metrics"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/pkg/uuid"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Reuse the client's ID when it is short enough to be sane
			requestID := strings.TrimSpace(request.Header.Get(constants.HeaderXRequestID))
			if requestID == "" || len(requestID) > 64 {
				requestID = uuid.New()
			}

			// 2. Inject into context and response headers
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (recorder *statusRecorder) WriteHeader(code int) {
	if !recorder.wroteHeader {
		recorder.status = code
		recorder.wroteHeader = true
	}
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(body []byte) (int, error) {
	recorder.wroteHeader = true
	return recorder.ResponseWriter.Write(body)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (recorder *statusRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

/*
StructuredLogger logs every request with its status and latency, and records
Prometheus series for it. It also injects a request-specific logger and a
[ctxutil.Trace] into the context.

Level: info below 400, warn for 4xx, error for 5xx.
*/
func StructuredLogger(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()

			// 1. Create a sub-logger for this specific request
			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", requestutil.ClientIP(request)),
			)

			// 2. Inject logger and trace for downstream use
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx, trace := ctxutil.WithTrace(ctx)
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			// 3. Final log entry after the request is finished
			elapsed := time.Since(startTime)
			logLevel := slog.LevelInfo
			switch {
			case wrappedWriter.status >= 500:
				logLevel = slog.LevelError
			case wrappedWriter.status >= 400:
				logLevel = slog.LevelWarn
			}

			attrs := []any{
				slog.Int("status", wrappedWriter.status),
				slog.Int64("latency_ms", elapsed.Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if trace.UserID > 0 {
				attrs = append(attrs, slog.Int64("user_id", trace.UserID))
			}
			requestLogger.Log(ctx, logLevel, "http_request_finished", attrs...)

			m.ObserveRequest(routePattern(request), request.Method, strconv.Itoa(wrappedWriter.status), elapsed.Seconds())
		})
	}
}

// routePattern returns the matched chi pattern, keeping label cardinality bounded.
func routePattern(request *http.Request) string {
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
		if pattern := routeContext.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter applies a token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
}

// NewIPRateLimiter starts the idle-entry cleanup loop, which stops when ctx is done.
func NewIPRateLimiter(ctx context.Context, rps float64, burst int) *IPRateLimiter {
	limiter := &IPRateLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   rate.Limit(rps),
		burst:   burst,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.evictIdle(time.Now())
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

func (l *IPRateLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, clientInfo := range l.clients {
		if now.Sub(clientInfo.lastSeen) > constants.RateLimitClientTTL {
			delete(l.clients, ip)
		}
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	clientInfo, found := l.clients[ip]
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = clientInfo
	}
	clientInfo.lastSeen = time.Now()

	return clientInfo.limiter.Allow()
}

// Middleware rejects requests over the limit with a 429 envelope.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !l.Allow(requestutil.ClientIP(request)) {
			writer.Header().Set("Retry-After", "1")
			respond.WriteError(writer, apperr.RateLimited(1))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Reliability & Safety

// PanicRecovery recovers from panics, logs stack trace, and returns 500.
func PanicRecovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stackTrace := make([]byte, 4096)
				length := runtime.Stack(stackTrace, false)

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stackTrace[:length])),
				)

				respond.WriteError(writer, apperr.Internal(nil))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

/*
CORS echoes allowed origins and answers preflight requests with 204.

An origins entry of "*" allows any origin. Because credentials are allowed,
the concrete origin is echoed instead of a literal "*".
*/
func CORS(origins []string) func(http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			allowAny = true
			continue
		}
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)

			if origin != "" {
				_, listed := allowed[origin]
				if allowAny || listed {
					header := writer.Header()
					header.Set("Access-Control-Allow-Origin", origin)
					header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Authorization, X-Request-ID")
					header.Set("Access-Control-Expose-Headers", "X-Request-ID")
					header.Set("Access-Control-Allow-Credentials", "true")
					header.Set("Access-Control-Max-Age", "600")
					header.Add("Vary", "Origin")
				}
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Client Address

// RealIP rewrites RemoteAddr from CF-Connecting-IP, X-Real-IP or the first
// X-Forwarded-For hop, in that order.
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ip := forwardedIP(request); ip != "" {
			request.RemoteAddr = ip
		}
		next.ServeHTTP(writer, request)
	})
}

func forwardedIP(request *http.Request) string {
	candidates := []string{
		request.Header.Get(constants.HeaderCFConnectingIP),
		request.Header.Get(constants.HeaderXRealIP),
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		candidates = append(candidates, strings.Split(forwarded, ",")[0])
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}
	return ""
}
