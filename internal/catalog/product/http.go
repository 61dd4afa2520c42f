// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/pkg/pagination"
)

// Handler implements the HTTP layer for products.
type Handler struct {
	service *Service
}

// NewHandler constructs a product [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

var editors = []sec.Role{sec.RoleSuperAdmin, sec.RoleAdmin, sec.RoleDev, sec.RoleSeller}

/*
RegisterRoutes mounts the product endpoints.

Endpoints:
  - GET    /auth/productos      : public, filtered and paginated
  - GET    /auth/productos/{id} : public
  - POST   /auth/productos      : SUPERADMIN, ADMIN, DEV, SELLER
  - PUT    /auth/productos/{id} : SUPERADMIN, ADMIN, DEV, SELLER
  - DELETE /auth/productos/{id} : SUPERADMIN, ADMIN, DEV, SELLER
*/
func (handler *Handler) RegisterRoutes(router chi.Router, guard *middleware.Guard) {
	router.Get("/auth/productos", handler.list)
	router.Get("/auth/productos/{id}", handler.get)

	private := router.With(guard.Authenticate, guard.RequireAnyOf(editors...))
	private.Post("/auth/productos", handler.create)
	private.Put("/auth/productos/{id}", handler.update)
	private.Delete("/auth/productos/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.List(request.Context(),
		FilterFromQuery(request.URL.Query()),
		pagination.FromRequest(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, FieldProductos, result)
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
	respond.OK(writer, FieldProducto, item)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeInput(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, FieldProducto, created)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.PositiveID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeInput(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Update(request.Context(), id, input)
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

// decodeInput reads a multipart form with uploads, or a JSON object.
func decodeInput(writer http.ResponseWriter, request *http.Request) (Input, error) {
	if requestutil.IsMultipart(request) {
		if err := media.ParseForm(writer, request); err != nil {
			return Input{}, err
		}
		input, err := ParseInput(FormValues(request.MultipartForm))
		if err != nil {
			return Input{}, err
		}
		input.AttachFiles(request.MultipartForm)
		return input, nil
	}

	values := map[string]any{}
	if err := requestutil.DecodeJSON(request, &values); err != nil {
		return Input{}, err
	}
	return ParseInput(values)
}
