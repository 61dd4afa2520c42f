// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package constants provides centralized, immutable values for the entire backend.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Transport: header names, including the proxy fallbacks for bearer tokens.
  - Storage: Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName     = "losreyes-backend"
	AppVersion  = "1.0.0"
	ServiceName = "Los Reyes del Usado - Backend"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads carry videos of up to 20MB, so this is generous.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// StartupTimeout bounds database/redis connection and migrations at boot.
	StartupTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// DefaultTokenTTL is the lifetime of session tokens unless TOKEN_TTL overrides it.
	DefaultTokenTTL = 86400 * time.Second

	// BearerScheme is the authorization scheme accepted by the guard.
	BearerScheme = "Bearer"
)

// # HTTP Headers

const (
	HeaderAuthorization         = "Authorization"
	HeaderRedirectAuthorization = "Redirect-Http-Authorization"
	HeaderXAuthorization        = "X-Authorization"
	HeaderXAuthToken            = "X-Auth-Token"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXRealIP               = "X-Real-IP"
	HeaderXForwardedFor         = "X-Forwarded-For"
	HeaderCFConnectingIP        = "CF-Connecting-IP"
	HeaderOrigin                = "Origin"
	HeaderAccept                = "Accept"
	HeaderContentType           = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldMessage = "message"
	FieldCode    = "code"

	StatusOk    = "Ok"
	StatusError = "Error"
)

// # Redis Prefixes (Key Taxonomy)

const (
	// RedisPrefixRevoked namespaces fingerprints of revoked bearer tokens.
	RedisPrefixRevoked = "auth:revoked:"
)

// # Locale

const (
	DefaultTimezone = "America/Argentina/Buenos_Aires"
)
