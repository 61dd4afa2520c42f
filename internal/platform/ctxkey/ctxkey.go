// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package ctxkey holds the context keys of per-request values set by the
// middleware chain and the auth guard.
package ctxkey

type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the decoded token claims ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyRole is the context key for the role loaded from storage ([sec.Role]).
	KeyRole key = "role"

	// KeyBearerToken is the context key for the raw bearer token of the request.
	KeyBearerToken key = "bearer_token"

	// KeyTrace is the context key for the mutable per-request [ctxutil.Trace].
	KeyTrace key = "trace"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
