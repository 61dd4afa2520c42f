// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package product manages the product catalog: listing with filters, detail,
creation and partial updates with media.

# Architecture

  - Input: [Input] is decoded from JSON or multipart with the same loose rules.
  - Media: uploads go through [MediaStore]; the stored URLs live in the
    imagen_principal JSON array (at most three) and video_url.
  - Storage: create and update check the category and write in one
    transaction, see [PostgresRepository].
*/
package product

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/losreyesdelusado/backend/internal/catalog/category"
	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/pkg/pagination"
)

// # Domain Entities

// Producto is a row of the productos table.
type Producto struct {
	ID                 int64      `json:"id_producto"`
	Nombre             string     `json:"nombre"`
	Descripcion        *string    `json:"descripcion"`
	CategoriaID        int64      `json:"id_categoria"`
	Stock              int64      `json:"stock"`
	Precio             float64    `json:"precio"`
	Marca              *string    `json:"marca"`
	Modelo             *string    `json:"modelo"`
	Caracteristicas    *string    `json:"caracteristicas"`
	CodigoInterno      *string    `json:"codigo_interno"`
	Imagenes           []string   `json:"imagen_principal"`
	VideoURL           *string    `json:"video_url"`
	Favorito           bool       `json:"favorito"`
	Activo             bool       `json:"activo"`
	FechaCreacion      *time.Time `json:"fecha_creacion"`
	FechaActualizacion *time.Time `json:"fecha_actualizacion"`
}

// MediaURLs lists every media URL the product references.
func (p *Producto) MediaURLs() []string {
	urls := append([]string{}, p.Imagenes...)
	if p.VideoURL != nil {
		urls = append(urls, *p.VideoURL)
	}
	return urls
}

// ListResult is the payload of GET /auth/productos.
type ListResult struct {
	Items          []*Producto     `json:"items"`
	Pagination     pagination.Meta `json:"pagination"`
	FiltersApplied map[string]any  `json:"filters_applied"`
}

// # Contracts

// Repository defines the persistence contract for products.
type Repository interface {
	// List returns one page of matching products and the total match count.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]*Producto, int, error)

	// FindByID returns [ErrNotFound] when the id does not exist.
	FindByID(ctx context.Context, id int64) (*Producto, error)

	// Create checks the category and inserts, atomically. It fills ID and timestamps.
	Create(ctx context.Context, p *Producto) error

	// Update checks the category and rewrites every column, atomically.
	Update(ctx context.Context, p *Producto) error

	Delete(ctx context.Context, id int64) error
}

// Categories resolves category ids. Satisfied by [*category.Service].
type Categories interface {
	Get(ctx context.Context, id int64) (*category.Categoria, error)
}

// MediaStore persists uploads. Satisfied by [*media.Storage].
type MediaStore interface {
	SaveFile(kind media.Kind, header *multipart.FileHeader, prefix string) (*media.Upload, error)
	Remove(url string) (owned bool, err error)
}

// # Messages

const (
	MaxImages = 3

	MsgNombreRequired    = "El nombre es requerido."
	MsgCategoriaRequired = "id_categoria es requerido y debe ser > 0."
	MsgStockNegative     = "El stock no puede ser negativo."
	MsgPrecioNegative    = "El precio no puede ser negativo."
	MsgTooManyImages     = "Máximo 3 imágenes por producto."
	MsgInvalidMediaURL   = "Debe ser una URL http o https válida."
	MsgInvalidNumber     = "Debe ser un número válido."
	MsgInvalidBool       = "Debe ser verdadero o falso."

	FieldProducto  = "producto"
	FieldProductos = "productos"
)

// ErrNotFound is returned for an unknown product id.
func ErrNotFound(id int64) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("El producto %d no existe.", id))
}

// ErrUnknownCategoria is returned when id_categoria does not exist.
func ErrUnknownCategoria(id int64) *apperr.AppError {
	return apperr.BadRequest(fmt.Sprintf("La categoría %d no existe.", id))
}
