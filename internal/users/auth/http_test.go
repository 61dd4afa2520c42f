// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/platform/middleware"
)

func newAuthRouter(h harness) chi.Router {
	router := chi.NewRouter()
	guard := middleware.NewGuard(h.tokens, h.revoked, h.users, nil)
	NewHandler(h.service).RegisterRoutes(router, guard)
	return router
}

func do(router http.Handler, method, target, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var envelope map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &envelope)
	return recorder, envelope
}

/*
TestHandler_Flow drives register, login and a double logout over HTTP.
*/
func TestHandler_Flow(t *testing.T) {
	h := newHarness(t)
	router := newAuthRouter(h)

	recorder, envelope := do(router, http.MethodPost, "/auth/register",
		`{"first_name":"Juan","last_name":"Pérez","email":"juan@example.com","password":"12345678","role":"Vendedor"}`, "")
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, "Ok", envelope["status"])
	assert.Equal(t, float64(201), envelope["code"])
	user := envelope["user"].(map[string]any)
	assert.Equal(t, "Vendedor", user["role"])
	assert.Equal(t, "SELLER_ROLE", user["role_value"])

	recorder, envelope = do(router, http.MethodPost, "/auth/login", `{"email":"juan@example.com","password":"12345678"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	session := envelope["user"].(map[string]any)
	assert.Equal(t, float64(3), session["role_number"])
	token, _ := session["token"].(string)
	require.NotEmpty(t, token)

	for i := 0; i < 2; i++ {
		recorder, envelope = do(router, http.MethodPost, "/auth/logout", "", token)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, MsgLoggedOut, envelope["message"])
	}
}

/*
TestHandler_Errors checks the error envelopes of the public endpoints.
*/
func TestHandler_Errors(t *testing.T) {
	h := newHarness(t)
	router := newAuthRouter(h)
	h.register(t, "juan@example.com", "12345678")

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		status  int
		message any
	}{
		{"bad_json", http.MethodPost, "/auth/login", `{`, http.StatusBadRequest, "El cuerpo de la solicitud no es un JSON válido."},
		{"wrong_password", http.MethodPost, "/auth/login", `{"email":"juan@example.com","password":"nope-nope"}`, http.StatusUnauthorized, MsgInvalidCredentials},
		{"duplicate", http.MethodPost, "/auth/register", `{"first_name":"Ana","last_name":"Gil","email":"juan@example.com","password":"12345678"}`, http.StatusConflict, MsgEmailTaken},
		{"short_password", http.MethodPost, "/auth/register", `{"first_name":"Ana","last_name":"Gil","email":"ana@example.com","password":"1234567"}`, http.StatusBadRequest, map[string]any{"password": MsgPasswordTooShort}},
		{"logout_without_token", http.MethodPost, "/auth/logout", "", http.StatusUnauthorized, "Acceso no autorizado, o Token inválido."},
		{"activate_unknown", http.MethodGet, "/auth/activate?token=nope", "", http.StatusForbidden, MsgTokenInvalid},
		{"reset_email_unknown", http.MethodGet, "/auth/reset-password-email?email=nadie@example.com", "", http.StatusForbidden, MsgEmailUnknown},
		{"reset_bad_token", http.MethodPost, "/auth/reset-password?token=nope&password=12345678", "", http.StatusForbidden, MsgTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, envelope := do(router, tt.method, tt.target, tt.body, "")
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, "Error", envelope["status"])
			assert.Equal(t, float64(tt.status), envelope["code"])
			assert.Equal(t, tt.message, envelope["message"])
		})
	}
}
