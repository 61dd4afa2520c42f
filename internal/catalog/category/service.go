// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
)

// Service implements the category use cases.
type Service struct {
	repo Repository
}

// NewService constructs a category [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every category with its product count.
func (service *Service) List(ctx context.Context) ([]*Categoria, error) {
	return service.repo.List(ctx)
}

// Get returns one category, or 404.
func (service *Service) Get(ctx context.Context, id int64) (*Categoria, error) {
	return service.repo.FindByID(ctx, id)
}

// Create validates and stores a new category.
func (service *Service) Create(ctx context.Context, nombre string) (*Categoria, error) {
	nombre, err := cleanNombre(nombre)
	if err != nil {
		return nil, err
	}

	taken, err := service.repo.NameTaken(ctx, nombre, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken(nombre)
	}

	created, err := service.repo.Create(ctx, nombre)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "categoria_created", slog.Int64("id_cat", created.ID))
	return created, nil
}

/*
Update renames the category when nombre is present and actually changes.

A case-only change is stored without a uniqueness check against itself.
*/
func (service *Service) Update(ctx context.Context, id int64, nombre *string) (string, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	if nombre != nil {
		cleaned, err := cleanNombre(*nombre)
		if err != nil {
			return "", err
		}
		if cleaned != current.Nombre {
			if !strings.EqualFold(cleaned, current.Nombre) {
				taken, err := service.repo.NameTaken(ctx, cleaned, id)
				if err != nil {
					return "", err
				}
				if taken {
					return "", ErrNameTaken(cleaned)
				}
			}
			if err := service.repo.Rename(ctx, id, cleaned); err != nil {
				return "", err
			}
		}
	}

	return fmt.Sprintf("La categoría %d fue actualizada correctamente.", id), nil
}

// Delete removes an empty category.
func (service *Service) Delete(ctx context.Context, id int64) (string, error) {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return "", err
	}

	count, err := service.repo.CountProducts(ctx, id)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", apperr.Conflict(MsgHasProducts)
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "categoria_deleted", slog.Int64("id_cat", id))
	return fmt.Sprintf("La categoría %d fue eliminada correctamente.", id), nil
}

func cleanNombre(nombre string) (string, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" || utf8.RuneCountInString(nombre) > maxNombreLength {
		return "", apperr.BadRequest(MsgNombreInvalid)
	}
	return nombre, nil
}
