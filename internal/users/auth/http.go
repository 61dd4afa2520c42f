// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /auth identity endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

/*
RegisterRoutes mounts the auth endpoints with full paths.

Endpoints:
  - POST /auth/register             : public
  - POST /auth/login                : public
  - GET  /auth/activate             : public, ?token=
  - GET  /auth/reset-password-email : public, ?email=
  - POST /auth/reset-password       : public
  - POST /auth/logout               : bearer required, revoked tokens accepted
*/
func (handler *Handler) RegisterRoutes(router chi.Router, guard *middleware.Guard) {
	router.Post("/auth/register", handler.register)
	router.Post("/auth/login", handler.login)
	router.Get("/auth/activate", handler.activate)
	router.Get("/auth/reset-password-email", handler.requestPasswordReset)
	router.Post("/auth/reset-password", handler.resetPassword)

	router.With(guard.RequireBearer).Post("/auth/logout", handler.logout)
}

// # Request Payloads

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      any    `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
register handles POST /auth/register.

Response:
  - 201: user: {id, name, email, role, role_value}
  - 400: missing or invalid fields
  - 409: email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Role:      input.Role,
		IP:        requestutil.ClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, FieldUser, user)
}

/*
login handles POST /auth/login.

Response:
  - 200: user: session projection with token
  - 400: missing fields
  - 401: invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
		IP:       requestutil.ClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, FieldUser, session)
}

// logout handles POST /auth/logout. It always answers 200.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token := ctxutil.GetBearerToken(request.Context())
	respond.Message(writer, handler.authService.Logout(request.Context(), token))
}

// activate handles GET /auth/activate?token=.
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	message, err := handler.authService.Activate(request.Context(), requestutil.Query(request, FieldToken))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}

// requestPasswordReset handles GET /auth/reset-password-email?email=.
func (handler *Handler) requestPasswordReset(writer http.ResponseWriter, request *http.Request) {
	message, err := handler.authService.RequestPasswordReset(
		request.Context(),
		requestutil.Query(request, FieldEmail),
		requestutil.ClientIP(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}

/*
resetPassword handles POST /auth/reset-password.

The token and password come from the query string when it carries a token,
otherwise from a JSON body.
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if token := requestutil.Query(request, FieldToken); token != "" {
		input.Token = token
		input.Password = request.URL.Query().Get(FieldPassword)
	} else if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}
