// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/middleware"
	requestutil "github.com/losreyesdelusado/backend/internal/platform/request"
	"github.com/losreyesdelusado/backend/internal/platform/respond"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// MaxMultipartMemory is held in memory while parsing a form; the rest spills to disk.
const MaxMultipartMemory = 8 << 20

// MaxRequestBytes caps a multipart body: one video plus three images and form fields.
const MaxRequestBytes = MaxVideoBytes + 3*MaxImageBytes + 1<<20

const (
	MsgFileRequired = "Se requiere un archivo en el campo 'file'."
	MsgInvalidForm  = "El formulario multipart no es válido."
)

// Handler serves the generic upload endpoint.
type Handler struct {
	storage *Storage
}

// NewHandler constructs a media [Handler].
func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

// RegisterRoutes mounts POST /auth/upload for catalog editors.
func (handler *Handler) RegisterRoutes(router chi.Router, guard *middleware.Guard) {
	router.With(
		guard.Authenticate,
		guard.RequireAnyOf(sec.RoleSuperAdmin, sec.RoleAdmin, sec.RoleDev, sec.RoleSeller),
	).Post("/auth/upload", handler.upload)
}

/*
upload handles POST /auth/upload.

Request (multipart):
  - file: the image or video, required
  - kind: "banner" stores an image under banners/
  - nombre, categoria: optional name parts for product media

Response:
  - 201: upload: {url, type, size}
  - 400: missing file, disallowed type or oversized file
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	if err := ParseForm(writer, request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest(MsgFileRequired))
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		respond.Error(writer, request, fmt.Errorf("media_upload_read_failed: %w", err))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respond.Error(writer, request, fmt.Errorf("media_upload_seek_failed: %w", err))
		return
	}

	kind, ok := DetectKind(head[:n])
	if !ok {
		// Save produces the precise message.
		kind = KindImage
	}

	prefix := "upload"
	if nombre := request.FormValue("nombre"); nombre != "" {
		prefix = ProductPrefix(nombre, request.FormValue("categoria"))
	}
	if kind == KindImage && request.FormValue("kind") == string(KindBanner) {
		kind, prefix = KindBanner, BannerPrefix
	}

	upload, err := handler.storage.Save(kind, header.Filename, file, prefix)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "upload", upload)
}

// ParseForm parses a multipart body within [MaxRequestBytes].
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	if !requestutil.IsMultipart(request) {
		return apperr.BadRequest(MsgInvalidForm)
	}
	request.Body = http.MaxBytesReader(writer, request.Body, MaxRequestBytes)
	if err := request.ParseMultipartForm(MaxMultipartMemory); err != nil {
		return apperr.BadRequest(MsgInvalidForm).WithCause(err)
	}
	return nil
}
