// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// Handler implements the HTTP layer for categories.
type Handler struct {
	service *Service
}

// NewHandler constructs a category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Editors may create, rename and delete categories.
var editors = []sec.Role{sec.RoleSuperAdmin, sec.RoleAdmin, sec.RoleDev}

/*
RegisterRoutes mounts the category endpoints.

Endpoints:
  - GET    /auth/categorias      : public
  - GET    /auth/categorias/{id} : public
  - POST   /auth/categorias      : SUPERADMIN, ADMIN, DEV
  - PUT    /auth/categorias/{id} : SUPERADMIN, ADMIN, DEV
  - DELETE /auth/categorias/{id} : SUPERADMIN, ADMIN, DEV
*/
func (handler *Handler) RegisterRoutes(router chi.Router, guard *middleware.Guard) {
	router.Get("/auth/categorias", handler.list)
	router.Get("/auth/categorias/{id}", handler.get)

	private := router.With(guard.Authenticate, guard.RequireAnyOf(editors...))
	private.Post("/auth/categorias", handler.create)
	private.Put("/auth/categorias/{id}", handler.update)
	private.Delete("/auth/categorias/{id}", handler.delete)
}

type categoriaRequest struct {
	Nombre *string `json:"nombre"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categorias, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, FieldCategorias, categorias)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, FieldCategoria, item)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input categoriaRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var nombre string
	if input.Nombre != nil {
		nombre = *input.Nombre
	}

	created, err := handler.service.Create(request.Context(), nombre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, FieldCategoria, created)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input categoriaRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Update(request.Context(), id, input.Nombre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, message)
}
