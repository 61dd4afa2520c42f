// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package category manages the product categories of the catalog.

Names are unique. A category that still has products cannot be deleted; the
foreign key on productos.id_categoria is the final authority for both rules.
*/
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
)

// # Domain Entities

// Categoria is a row of the categorias table.
type Categoria struct {
	ID            int64      `json:"id_cat"`
	Nombre        string     `json:"nombre"`
	FechaCreacion *time.Time `json:"fecha_creacion,omitempty"`
	// Productos is only filled by listings.
	Productos *int64 `json:"productos,omitempty"`
}

// # Repository Contracts

// Repository defines the persistence contract for categories.
type Repository interface {
	// List returns every category ordered by nombre, with product counts.
	List(ctx context.Context) ([]*Categoria, error)

	// FindByID returns a 404 [apperr.AppError] when the id does not exist.
	FindByID(ctx context.Context, id int64) (*Categoria, error)

	// NameTaken compares case-insensitively, ignoring exceptID.
	NameTaken(ctx context.Context, nombre string, exceptID int64) (bool, error)

	Create(ctx context.Context, nombre string) (*Categoria, error)
	Rename(ctx context.Context, id int64, nombre string) error

	// CountProducts returns how many products reference the category.
	CountProducts(ctx context.Context, id int64) (int64, error)

	// Delete reports 409 when products still reference the category.
	Delete(ctx context.Context, id int64) error
}

// # Messages

const (
	MsgNombreInvalid = "El nombre de la categoría es requerido y debe tener hasta 150 caracteres."
	MsgHasProducts   = "No se puede eliminar la categoría: tiene productos asociados."

	maxNombreLength = 150

	FieldNombre     = "nombre"
	FieldCategoria  = "categoria"
	FieldCategorias = "categorias"
)

// ErrNotFound is returned for an unknown category id.
func ErrNotFound(id int64) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("La categoría %d no existe.", id))
}

// ErrNameTaken is returned for a duplicate nombre.
func ErrNameTaken(nombre string) *apperr.AppError {
	return apperr.BadRequest(fmt.Sprintf("La categoría '%s' ya está en uso.", nombre))
}
