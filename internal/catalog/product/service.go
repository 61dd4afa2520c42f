// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/losreyesdelusado/backend/internal/catalog/category"
	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/validate"
	"github.com/losreyesdelusado/backend/pkg/pagination"
	"github.com/losreyesdelusado/backend/pkg/pointer"
	"github.com/losreyesdelusado/backend/pkg/slice"
)

// Service implements the product use cases.
type Service struct {
	repo       Repository
	categories Categories
	media      MediaStore
}

// NewService constructs a product [Service].
func NewService(repo Repository, categories Categories, store MediaStore) *Service {
	return &Service{repo: repo, categories: categories, media: store}
}

// List returns one page of products matching filter.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) (*ListResult, error) {
	items, total, err := service.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Items:          items,
		Pagination:     pagination.NewMeta(page, total),
		FiltersApplied: filter.Applied(),
	}, nil
}

// Get returns one product, or 404.
func (service *Service) Get(ctx context.Context, id int64) (*Producto, error) {
	return service.repo.FindByID(ctx, id)
}

/*
Create validates input, stores its uploads and inserts the product.

Uploaded files are removed again when the insert fails.
*/
func (service *Service) Create(ctx context.Context, input Input) (*Producto, error) {
	p := &Producto{Activo: true, Imagenes: []string{}}
	if input.Nombre == nil {
		input.Nombre = pointer.To("")
	}
	if input.CategoriaID == nil {
		input.CategoriaID = pointer.To(int64(0))
	}
	if err := apply(p, input); err != nil {
		return nil, err
	}
	if len(p.Imagenes)+len(input.ImageFiles) > MaxImages {
		return nil, validate.FieldError(keysImagenes[0], MsgTooManyImages)
	}

	categoria, err := service.categoria(ctx, p.CategoriaID)
	if err != nil {
		return nil, err
	}

	uploads := &uploadBatch{store: service.media, prefix: media.ProductPrefix(p.Nombre, categoria.Nombre)}
	if err := uploads.attach(p, input); err != nil {
		uploads.rollback(ctx)
		return nil, err
	}

	if err := service.repo.Create(ctx, p); err != nil {
		uploads.rollback(ctx)
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "producto_created",
		slog.Int64("id_producto", p.ID),
		slog.Int("uploads", len(uploads.saved)),
	)
	return p, nil
}

/*
Update applies a partial change to product id.

Image list order of operations: replace_images empties the list, an explicit
imagen_principal replaces it, remove_images drops entries, keep_images keeps
only the listed entries, then uploads are appended. Media the product no
longer references is removed after the update commits.
*/
func (service *Service) Update(ctx context.Context, id int64, input Input) (string, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	previous := current.MediaURLs()

	next := *current
	next.Imagenes = append([]string{}, current.Imagenes...)
	if input.ReplaceImages {
		next.Imagenes = []string{}
	}
	if err := apply(&next, input); err != nil {
		return "", err
	}
	if len(input.RemoveImages) > 0 {
		next.Imagenes = slice.Filter(next.Imagenes, func(url string) bool {
			return !slices.Contains(input.RemoveImages, url)
		})
	}
	if input.KeepSet {
		next.Imagenes = slice.Filter(next.Imagenes, func(url string) bool {
			return slices.Contains(input.KeepImages, url)
		})
	}
	if input.RemoveVideo && input.VideoFile == nil {
		next.VideoURL = nil
	}
	if len(next.Imagenes)+len(input.ImageFiles) > MaxImages {
		return "", validate.FieldError(keysImagenes[0], MsgTooManyImages)
	}

	categoria, err := service.categoria(ctx, next.CategoriaID)
	if err != nil {
		return "", err
	}

	uploads := &uploadBatch{store: service.media, prefix: media.ProductPrefix(next.Nombre, categoria.Nombre)}
	if err := uploads.attach(&next, input); err != nil {
		uploads.rollback(ctx)
		return "", err
	}

	if err := service.repo.Update(ctx, &next); err != nil {
		uploads.rollback(ctx)
		return "", err
	}

	kept := next.MediaURLs()
	service.removeMedia(ctx, slice.Filter(previous, func(url string) bool {
		return !slices.Contains(kept, url)
	}))

	ctxutil.GetLogger(ctx).InfoContext(ctx, "producto_updated", slog.Int64("id_producto", id))
	return fmt.Sprintf("El producto %d fue actualizado correctamente.", id), nil
}

// Delete removes product id and the local media files it owns.
func (service *Service) Delete(ctx context.Context, id int64) (string, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := service.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	service.removeMedia(ctx, current.MediaURLs())

	ctxutil.GetLogger(ctx).InfoContext(ctx, "producto_deleted", slog.Int64("id_producto", id))
	return fmt.Sprintf("El producto %d fue eliminado correctamente.", id), nil
}

// categoria resolves id_categoria; an unknown id is a client error.
func (service *Service) categoria(ctx context.Context, id int64) (*category.Categoria, error) {
	categoria, err := service.categories.Get(ctx, id)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusNotFound {
			return nil, ErrUnknownCategoria(id)
		}
		return nil, err
	}
	return categoria, nil
}

func (service *Service) removeMedia(ctx context.Context, urls []string) {
	for _, url := range urls {
		if _, err := service.media.Remove(url); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "media_remove_failed",
				slog.String("url", url),
				slog.Any("error", err),
			)
		}
	}
}

// # Field rules

// apply validates the fields present in input and copies them onto p.
func apply(p *Producto, input Input) error {
	validator := &validate.Validator{}

	if input.Nombre != nil {
		validator.Custom(keysNombre[0], *input.Nombre == "", MsgNombreRequired)
		p.Nombre = *input.Nombre
	}
	if input.CategoriaID != nil {
		validator.Custom(keysCategoria[0], *input.CategoriaID <= 0, MsgCategoriaRequired)
		p.CategoriaID = *input.CategoriaID
	}
	if input.Stock != nil {
		validator.Custom(keysStock[0], *input.Stock < 0, MsgStockNegative)
		p.Stock = *input.Stock
	}
	if input.Precio != nil {
		validator.Custom(keysPrecio[0], *input.Precio < 0 || math.IsNaN(*input.Precio) || math.IsInf(*input.Precio, 0), MsgPrecioNegative)
		p.Precio = math.Round(*input.Precio*100) / 100
	}
	if input.Favorito != nil {
		p.Favorito = *input.Favorito
	}
	if input.Activo != nil {
		p.Activo = *input.Activo
	}

	setText(&p.Descripcion, input.Descripcion)
	setText(&p.Marca, input.Marca)
	setText(&p.Modelo, input.Modelo)
	setText(&p.Caracteristicas, input.Caracteristicas)
	setText(&p.CodigoInterno, input.CodigoInterno)
	if input.VideoURL.Set {
		url := input.VideoURL.Value
		validator.Custom(keysVideoURL[0], url != nil && !validate.IsHTTPURL(*url), MsgInvalidMediaURL)
		p.VideoURL = url
	}

	if input.ImagenesSet {
		images := slice.Unique(input.Imagenes)
		for _, url := range images {
			if !validate.IsHTTPURL(url) {
				validator.Custom(keysImagenes[0], true, MsgInvalidMediaURL)
				break
			}
		}
		validator.Custom(keysImagenes[0], len(images) > MaxImages, MsgTooManyImages)
		p.Imagenes = images
	}

	return validator.Err()
}

func setText(target **string, field Text) {
	if field.Set {
		*target = field.Value
	}
}

// uploadBatch saves the uploads of one request and can undo them.
type uploadBatch struct {
	store  MediaStore
	prefix string
	saved  []string
}

func (batch *uploadBatch) save(kind media.Kind, header *multipart.FileHeader) (string, error) {
	upload, err := batch.store.SaveFile(kind, header, batch.prefix)
	if err != nil {
		return "", err
	}
	batch.saved = append(batch.saved, upload.URL)
	return upload.URL, nil
}

// attach stores the files of input and references them from p.
func (batch *uploadBatch) attach(p *Producto, input Input) error {
	for _, header := range input.ImageFiles {
		url, err := batch.save(media.KindImage, header)
		if err != nil {
			return err
		}
		p.Imagenes = append(p.Imagenes, url)
	}
	p.Imagenes = slice.Unique(p.Imagenes)

	if input.VideoFile != nil {
		url, err := batch.save(media.KindVideo, input.VideoFile)
		if err != nil {
			return err
		}
		p.VideoURL = &url
	}
	return nil
}

func (batch *uploadBatch) rollback(ctx context.Context) {
	for _, url := range batch.saved {
		if _, err := batch.store.Remove(url); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "media_rollback_failed",
				slog.String("url", url),
				slog.Any("error", err),
			)
		}
	}
	batch.saved = nil
}
