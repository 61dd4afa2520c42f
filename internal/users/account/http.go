// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/users/auth"
)

// Handler implements the HTTP layer for user administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

/*
RegisterRoutes mounts the /api/users endpoints behind the guard.

Endpoints:
  - GET    /api/users      : every role except CLIENT
  - GET    /api/users/{id} : SUPERADMIN, ADMIN, DEV
  - POST   /api/users      : SUPERADMIN, ADMIN
  - PUT    /api/users/{id} : every role (self-service below ADMIN)
  - DELETE /api/users/{id} : SUPERADMIN only
*/
func (handler *Handler) RegisterRoutes(router chi.Router, guard *middleware.Guard) {
	authed := router.With(guard.Authenticate)

	authed.With(guard.ExcludeRole(sec.RoleClient)).Get("/api/users", handler.list)
	authed.With(guard.RequireAnyOf(sec.RoleSuperAdmin, sec.RoleAdmin, sec.RoleDev)).Get("/api/users/{id}", handler.get)
	authed.With(guard.RequireAnyOf(sec.RoleSuperAdmin, sec.RoleAdmin)).Post("/api/users", handler.create)
	authed.With(guard.AllowAllRoles()).Put("/api/users/{id}", handler.update)
	authed.With(guard.RequireExactly(sec.RoleSuperAdmin)).Delete("/api/users/{id}", handler.delete)
}

// # Request Payloads

type createRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      any    `json:"role"`
}

type updateRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	Role           any     `json:"role"`
	RoleValue      any     `json:"role_value"`
	ConnectedAt    *string `json:"connected_at"`
	DisconnectedAt *string `json:"disconnected_at"`
}

// actor reads the caller from the context populated by the guard.
func actor(request *http.Request) (Actor, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return Actor{}, err
	}
	role, _ := ctxutil.GetRole(request.Context())
	return Actor{ID: claims.UserID, Role: role}, nil
}

// # Endpoints

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.accountService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, FieldUsers, accounts)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PositiveID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, auth.FieldUser, account)
}

/*
create handles POST /api/users.

Response:
  - 201: user: the new account
  - 400: invalid fields
  - 403: ADMIN creating a privileged account
  - 409: email already in use
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	caller, err := actor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.Create(request.Context(), caller, CreateInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, auth.FieldUser, account)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	caller, err := actor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.PositiveID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.accountService.Update(request.Context(), caller, id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	caller, err := actor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.PositiveID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.accountService.Delete(request.Context(), caller, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}
