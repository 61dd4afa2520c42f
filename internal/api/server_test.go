// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/metrics"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	"github.com/losreyesdelusado/backend/internal/platform/revocation"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/users/account"
	"github.com/losreyesdelusado/backend/internal/users/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type roleTable map[int64]sec.Role

func (r roleTable) FindRole(_ context.Context, id int64) (sec.Role, error) {
	role, ok := r[id]
	if !ok {
		return "", apperr.NotFound("Usuario no encontrado.")
	}
	return role, nil
}

// accountStub holds a single user and records deletions.
type accountStub struct {
	deleted []int64
}

func (s *accountStub) List(context.Context) ([]*auth.User, error) { return nil, nil }

func (s *accountStub) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if id != 2 {
		return nil, auth.ErrUserNotFound
	}
	return &auth.User{ID: 2, Email: "victima@example.com", Role: sec.RoleSeller}, nil
}

func (s *accountStub) EmailTaken(context.Context, string, int64) (bool, error) { return false, nil }

func (s *accountStub) Create(context.Context, *auth.User) (int64, error) { return 0, nil }

func (s *accountStub) Update(context.Context, int64, account.Patch) error { return nil }

func (s *accountStub) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type testServer struct {
	router   chi.Router
	tokens   *sec.TokenService
	accounts *accountStub
}

func newTestServer(t *testing.T, dbPing func(context.Context) error) testServer {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	guard := middleware.NewGuard(tokens, revocation.NewMemoryStore(time.Now),
		roleTable{1: sec.RoleSuperAdmin, 5: sec.RoleClient}, m)

	accounts := &accountStub{}
	router := NewRouter(context.Background(), RouterOptions{
		Logger:  logger,
		Metrics: m,
		Guard:   guard,
		Origins: []string{"*"},
	}, Handlers{
		Health:  NewHealthHandler(Check{Name: "postgres", Ping: dbPing}, time.UTC, logger),
		Domains: []Registrar{account.NewHandler(account.NewService(accounts))},
	})

	return testServer{router: router, tokens: tokens, accounts: accounts}
}

func (s testServer) token(t *testing.T, userID int64) string {
	t.Helper()
	token, err := s.tokens.Issue(sec.AuthClaims{UserID: userID}, 0)
	require.NoError(t, err)
	return token
}

func (s testServer) do(method, target, token string) (*httptest.ResponseRecorder, map[string]any) {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)

	var body map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &body)
	return recorder, body
}

/*
TestRouter_NotFoundVersusMethodNotAllowed separates unknown paths from wrong methods.
*/
func TestRouter_NotFoundVersusMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, nil)

	tests := []struct {
		name    string
		method  string
		target  string
		status  int
		message string
	}{
		{"unknown_path", http.MethodGet, "/no/existe", http.StatusNotFound, apperr.MsgNotFound},
		{"wrong_method", http.MethodPost, "/health", http.StatusMethodNotAllowed, apperr.MsgMethodNotAllowed},
		{"wrong_method_on_resource", http.MethodPatch, "/api/users/2", http.StatusMethodNotAllowed, apperr.MsgMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := server.do(tt.method, tt.target, "")
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, "Error", body["status"])
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, float64(tt.status), body["code"])
		})
	}
}

/*
TestRouter_Health covers the root page, probes, HEAD and preflight.
*/
func TestRouter_Health(t *testing.T) {
	server := newTestServer(t, func(context.Context) error { return nil })

	recorder, body := server.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Los Reyes del Usado - Backend", body["service"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"online": true, "type": "pgsql", "description": "PostgreSQL"}, body["db"])
	_, err := time.Parse(time.RFC3339, body["time"].(string))
	assert.NoError(t, err)

	recorder, _ = server.do(http.MethodGet, "/health/", "")
	assert.Equal(t, http.StatusOK, recorder.Code, "trailing slash is stripped")

	recorder, _ = server.do(http.MethodHead, "/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = server.do(http.MethodOptions, "/", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, _ = server.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	down := newTestServer(t, func(context.Context) error { return errors.New("connection refused") })

	recorder, body = down.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "degraded", body["status"])

	recorder, body = down.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "degraded", body["status"])
}

/*
TestRouter_ClientCannotDeleteUsers keeps the target row when a CLIENT calls DELETE.
*/
func TestRouter_ClientCannotDeleteUsers(t *testing.T) {
	server := newTestServer(t, nil)

	recorder, body := server.do(http.MethodDelete, "/api/users/2", server.token(t, 5))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, body["message"], "Acceso denegado")
	assert.Empty(t, server.accounts.deleted)

	recorder, _ = server.do(http.MethodDelete, "/api/users/2", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, server.accounts.deleted)

	recorder, body = server.do(http.MethodDelete, "/api/users/2", server.token(t, 1))
	require.Equal(t, http.StatusOK, recorder.Code, body)
	assert.Equal(t, []int64{2}, server.accounts.deleted)
}
