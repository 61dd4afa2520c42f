// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/constants"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/metrics"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/internal/platform/revocation"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// bearerPattern strips a case-insensitive Bearer prefix with flexible whitespace.
var bearerPattern = regexp.MustCompile(`(?i)^\s*Bearer\s+(\S.*?)\s*$`)

// tokenHeaders is the extraction chain, tried in order. Proxies in front of
// the API sometimes drop Authorization or rewrite it under another name.
var tokenHeaders = []string{
	constants.HeaderAuthorization,
	constants.HeaderRedirectAuthorization,
	constants.HeaderXAuthorization,
	constants.HeaderXAuthToken,
}

// TokenDecoder verifies a raw bearer token. Satisfied by [*sec.TokenService].
type TokenDecoder interface {
	Decode(token string) (*sec.AuthClaims, error)
}

// RoleLoader returns the current role of a user. A missing user must be
// reported as an error with HTTP status 404 (see [apperr.NotFound]).
type RoleLoader interface {
	FindRole(ctx context.Context, userID int64) (sec.Role, error)
}

/*
Guard authenticates requests carrying a bearer token.

Per request it walks:

	NoToken -> TokenPresent -> Authenticated(id) -> RoleKnown -> Authorized | Denied

Terminal failures:

  - no usable header: 401
  - bad signature, expired, revoked, or a purpose-bound token: 403
  - user gone or role outside the route's set: 403
  - revocation or user store unavailable: 500
*/
type Guard struct {
	tokens  TokenDecoder
	revoked revocation.Store
	roles   RoleLoader
	metrics *metrics.Metrics
}

// NewGuard wires the guard. m may be nil.
func NewGuard(tokens TokenDecoder, revoked revocation.Store, roles RoleLoader, m *metrics.Metrics) *Guard {
	return &Guard{tokens: tokens, revoked: revoked, roles: roles, metrics: m}
}

// ExtractBearer returns the token from the first header of the chain that
// carries a well-formed Bearer credential.
func ExtractBearer(request *http.Request) (string, bool) {
	for _, name := range tokenHeaders {
		value := request.Header.Get(name)
		if value == "" {
			continue
		}
		if match := bearerPattern.FindStringSubmatch(value); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// Authenticate runs the whole state machine up to RoleKnown and stores the
// claims, role and raw token in the request context.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		// 1. Extraction
		token, ok := ExtractBearer(request)
		if !ok {
			g.reject(writer, request, metrics.RejectMissingToken, apperr.Unauthorized(apperr.MsgUnauthorized))
			return
		}

		// 2. Signature and time claims
		claims, err := g.tokens.Decode(token)
		if err != nil || claims.Purpose != "" {
			g.reject(writer, request, metrics.RejectInvalidToken, apperr.Forbidden(apperr.MsgTokenRejected))
			return
		}

		// 3. Revocation list
		revoked, err := g.revoked.IsRevoked(ctx, token)
		if err != nil {
			g.reject(writer, request, metrics.RejectStoreError, apperr.Internal(fmt.Errorf("guard_revocation_check_failed: %w", err)))
			return
		}
		if revoked {
			g.reject(writer, request, metrics.RejectRevoked, apperr.Forbidden(apperr.MsgTokenRejected))
			return
		}

		// 4. Role from storage, never from the token
		role, err := g.roles.FindRole(ctx, claims.UserID)
		if err != nil {
			if apperr.StatusOf(err) == http.StatusNotFound {
				g.reject(writer, request, metrics.RejectUnknownUser, apperr.Forbidden(apperr.MsgAccessDenied))
				return
			}
			g.reject(writer, request, metrics.RejectStoreError, apperr.Internal(fmt.Errorf("guard_role_load_failed: %w", err)))
			return
		}

		if trace := ctxutil.GetTrace(ctx); trace != nil {
			trace.UserID = claims.UserID
		}

		ctx = ctxutil.WithAuthUser(ctx, claims)
		ctx = ctxutil.WithRole(ctx, role)
		ctx = ctxutil.WithBearerToken(ctx, token)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

/*
RequireBearer only extracts the token and decodes it best-effort.

Used by logout: a revoked or expired token still reaches the handler, so a
second logout succeeds instead of failing with 403. A missing header is 401.
*/
func (g *Guard) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token, ok := ExtractBearer(request)
		if !ok {
			g.reject(writer, request, metrics.RejectMissingToken, apperr.Unauthorized(apperr.MsgUnauthorized))
			return
		}

		ctx := ctxutil.WithBearerToken(request.Context(), token)
		if claims, _ := g.tokens.Decode(token); claims != nil {
			ctx = ctxutil.WithAuthUser(ctx, claims)
			if trace := ctxutil.GetTrace(ctx); trace != nil {
				trace.UserID = claims.UserID
			}
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequireAnyOf admits callers whose role is in roles.
func (g *Guard) RequireAnyOf(roles ...sec.Role) func(http.Handler) http.Handler {
	return g.requireRole(func(role sec.Role) *apperr.AppError {
		if role.In(roles...) {
			return nil
		}
		return apperr.Forbidden(apperr.MsgAccessDenied)
	})
}

// RequireExactly admits only callers holding role.
func (g *Guard) RequireExactly(role sec.Role) func(http.Handler) http.Handler {
	return g.requireRole(func(actual sec.Role) *apperr.AppError {
		if actual == role {
			return nil
		}
		return apperr.Forbidden(fmt.Sprintf("Acceso denegado. Se requiere el rol de %s.", role.DisplayName()))
	})
}

// ExcludeRole admits every caller except those holding role.
func (g *Guard) ExcludeRole(role sec.Role) func(http.Handler) http.Handler {
	return g.requireRole(func(actual sec.Role) *apperr.AppError {
		if actual != role {
			return nil
		}
		return apperr.Forbidden(apperr.MsgAccessDenied)
	})
}

// AllowAllRoles admits any authenticated caller with a known role.
func (g *Guard) AllowAllRoles() func(http.Handler) http.Handler {
	return g.requireRole(func(role sec.Role) *apperr.AppError {
		if role.Valid() {
			return nil
		}
		return apperr.Forbidden(apperr.MsgAccessDenied)
	})
}

// requireRole must run after [Guard.Authenticate]. Without a role in the
// context the request is treated as unauthenticated.
func (g *Guard) requireRole(check func(sec.Role) *apperr.AppError) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			role, ok := ctxutil.GetRole(request.Context())
			if !ok {
				g.reject(writer, request, metrics.RejectMissingToken, apperr.Unauthorized(apperr.MsgUnauthorized))
				return
			}
			if denial := check(role); denial != nil {
				g.reject(writer, request, metrics.RejectRole, denial)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func (g *Guard) reject(writer http.ResponseWriter, request *http.Request, reason string, appError *apperr.AppError) {
	g.metrics.GuardRejected(reason)
	ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "guard_rejected",
		slog.String("reason", reason),
		slog.Int("status", appError.HTTPStatus),
	)
	respond.Error(writer, request, appError)
}
