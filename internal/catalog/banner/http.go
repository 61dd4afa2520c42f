// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package banner

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// Handler implements the HTTP layer for banners.
type Handler struct {
	service *Service
}

// NewHandler constructs a banner [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

var editors = []sec.Role{sec.RoleSuperAdmin, sec.RoleAdmin, sec.RoleDev}

// Multipart fields checked in order for the banner image.
var fileFields = []string{"banner", "image", "imagen", "file"}

/*
RegisterRoutes mounts the banner endpoints.

Endpoints:
  - GET    /auth/banners      : public
  - GET    /auth/banners/{id} : public
  - POST   /auth/banners      : SUPERADMIN, ADMIN, DEV
  - PUT    /auth/banners/{id} : SUPERADMIN, ADMIN, DEV
  - DELETE /auth/banners/{id} : SUPERADMIN, ADMIN, DEV
*/
func (handler *Handler) RegisterRoutes(router chi.Router, guard *middleware.Guard) {
	router.Get("/auth/banners", handler.list)
	router.Get("/auth/banners/{id}", handler.get)

	private := router.With(guard.Authenticate, guard.RequireAnyOf(editors...))
	private.Post("/auth/banners", handler.create)
	private.Put("/auth/banners/{id}", handler.update)
	private.Delete("/auth/banners/{id}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	banners, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, FieldBanners, banners)
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
	respond.OK(writer, FieldBanner, item)
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
	respond.Created(writer, FieldBanner, created)
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

type bannerRequest struct {
	Banner string `json:"banner"`
}

func decodeInput(writer http.ResponseWriter, request *http.Request) (Input, error) {
	if requestutil.IsMultipart(request) {
		if err := media.ParseForm(writer, request); err != nil {
			return Input{}, err
		}
		form := request.MultipartForm
		for _, field := range fileFields {
			if files := form.File[field]; len(files) > 0 {
				return Input{File: files[0]}, nil
			}
		}
		return Input{URL: request.FormValue(FieldBanner)}, nil
	}

	var body bannerRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		return Input{}, err
	}
	return Input{URL: body.Banner}, nil
}
