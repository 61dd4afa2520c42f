// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package banner manages the storefront banners: an image URL per row,
// either uploaded here or hosted elsewhere.
package banner

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/apperr"
)

// Banner is a row of the banners table.
type Banner struct {
	ID            int64      `json:"id_banner"`
	URL           string     `json:"banner"`
	FechaCreacion *time.Time `json:"fecha_creacion"`
}

// Input carries either an uploaded image or an external URL. File wins.
type Input struct {
	URL  string
	File *multipart.FileHeader
}

// Repository defines the persistence contract for banners.
type Repository interface {
	// List orders newest first.
	List(ctx context.Context) ([]*Banner, error)
	FindByID(ctx context.Context, id int64) (*Banner, error)
	Create(ctx context.Context, url string) (*Banner, error)
	Update(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
}

// MediaStore persists uploaded banner images. Satisfied by [*media.Storage].
type MediaStore interface {
	SaveFile(kind media.Kind, header *multipart.FileHeader, prefix string) (*media.Upload, error)
	Remove(url string) (owned bool, err error)
}

const (
	MsgURLRequired = "Se requiere la URL del banner."
	MsgURLInvalid  = "URL de banner inválida."

	FieldBanner  = "banner"
	FieldBanners = "banners"
)

// ErrNotFound is returned for an unknown banner id.
func ErrNotFound(id int64) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("Banner %d no encontrado.", id))
}
