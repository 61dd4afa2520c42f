// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/catalog/category"
	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/pkg/pagination"
	"github.com/losreyesdelusado/backend/pkg/pointer"
)

// # Fakes

type memoryRepo struct {
	rows      map[int64]*Producto
	nextID    int64
	failWrite error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[int64]*Producto{}}
}

func (m *memoryRepo) List(_ context.Context, _ Filter, _ pagination.Params) ([]*Producto, int, error) {
	out := []*Producto{}
	for _, row := range m.rows {
		copied := *row
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*Producto, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound(id)
	}
	copied := *row
	copied.Imagenes = append([]string{}, row.Imagenes...)
	return &copied, nil
}

func (m *memoryRepo) Create(_ context.Context, p *Producto) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.nextID++
	p.ID = m.nextID
	copied := *p
	m.rows[p.ID] = &copied
	return nil
}

func (m *memoryRepo) Update(_ context.Context, p *Producto) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	copied := *p
	m.rows[p.ID] = &copied
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound(id)
	}
	delete(m.rows, id)
	return nil
}

type fakeCategories map[int64]string

func (f fakeCategories) Get(_ context.Context, id int64) (*category.Categoria, error) {
	nombre, ok := f[id]
	if !ok {
		return nil, category.ErrNotFound(id)
	}
	return &category.Categoria{ID: id, Nombre: nombre}, nil
}

type fakeMedia struct {
	saved    []string
	prefixes []string
	removed  []string
	failOn   string
}

func (f *fakeMedia) SaveFile(kind media.Kind, header *multipart.FileHeader, prefix string) (*media.Upload, error) {
	if header.Filename == f.failOn {
		return nil, apperr.BadRequest(header.Filename + ": tipo no permitido (text/plain).")
	}
	url := "http://cdn.test/" + kind.Dir() + "/" + header.Filename
	f.saved = append(f.saved, url)
	f.prefixes = append(f.prefixes, prefix)
	return &media.Upload{URL: url}, nil
}

func (f *fakeMedia) Remove(url string) (bool, error) {
	f.removed = append(f.removed, url)
	return true, nil
}

func files(names ...string) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, len(names))
	for i, name := range names {
		out[i] = &multipart.FileHeader{Filename: name}
	}
	return out
}

func newTestService() (*Service, *memoryRepo, *fakeMedia) {
	repo := newMemoryRepo()
	store := &fakeMedia{}
	return NewService(repo, fakeCategories{1: "Fotografía", 2: "Hogar"}, store), repo, store
}

// # Tests

/*
TestService_Create covers validation, category lookup and uploads.
*/
func TestService_Create(t *testing.T) {
	valid := func() Input {
		return Input{
			Nombre:      pointer.To("Cámara"),
			CategoriaID: pointer.To(int64(1)),
			Precio:      pointer.To(10.456),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Input)
		status  int
		message string
	}{
		{"missing_nombre", func(in *Input) { in.Nombre = nil }, http.StatusBadRequest, ""},
		{"missing_categoria", func(in *Input) { in.CategoriaID = nil }, http.StatusBadRequest, ""},
		{"negative_stock", func(in *Input) { in.Stock = pointer.To(int64(-1)) }, http.StatusBadRequest, ""},
		{"negative_precio", func(in *Input) { in.Precio = pointer.To(-0.5) }, http.StatusBadRequest, ""},
		{"unknown_categoria", func(in *Input) { in.CategoriaID = pointer.To(int64(99)) }, http.StatusBadRequest, "La categoría 99 no existe."},
		{"invalid_image_url", func(in *Input) {
			in.Imagenes, in.ImagenesSet = []string{"ftp://a.test/x.png"}, true
		}, http.StatusBadRequest, ""},
		{"too_many_images", func(in *Input) {
			in.Imagenes, in.ImagenesSet = []string{"https://a.test/1.png", "https://a.test/2.png"}, true
			in.ImageFiles = files("a.png", "b.png")
		}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, store := newTestService()
			input := valid()
			tt.mutate(&input)

			_, err := service.Create(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, tt.status, apperr.StatusOf(err))
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
			assert.Empty(t, repo.rows)
			assert.Empty(t, store.saved)
		})
	}

	t.Run("success", func(t *testing.T) {
		service, repo, store := newTestService()
		input := valid()
		input.Imagenes, input.ImagenesSet = []string{"https://a.test/1.png", "https://a.test/1.png"}, true
		input.ImageFiles = files("a.png")
		input.VideoFile = &multipart.FileHeader{Filename: "v.mp4"}

		created, err := service.Create(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, 10.46, created.Precio)
		assert.True(t, created.Activo)
		assert.Equal(t, []string{"https://a.test/1.png", "http://cdn.test/images/a.png"}, created.Imagenes)
		require.NotNil(t, created.VideoURL)
		assert.Equal(t, "http://cdn.test/videos/v.mp4", *created.VideoURL)
		assert.Equal(t, []string{"camara_fotografia", "camara_fotografia"}, store.prefixes)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("insert_failure_removes_uploads", func(t *testing.T) {
		service, repo, store := newTestService()
		repo.failWrite = errors.New("connection reset")
		input := valid()
		input.ImageFiles = files("a.png")

		_, err := service.Create(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, []string{"http://cdn.test/images/a.png"}, store.removed)
	})

	t.Run("rejected_upload_removes_earlier_ones", func(t *testing.T) {
		service, _, store := newTestService()
		store.failOn = "b.txt"
		input := valid()
		input.ImageFiles = files("a.png", "b.txt")

		_, err := service.Create(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		assert.Equal(t, []string{"http://cdn.test/images/a.png"}, store.removed)
	})
}

/*
TestService_Update covers partial fields, image flags and media cleanup.
*/
func TestService_Update(t *testing.T) {
	const (
		u1 = "http://cdn.test/images/1.png"
		u2 = "http://cdn.test/images/2.png"
		v  = "http://cdn.test/videos/v.mp4"
	)

	seed := func(repo *memoryRepo) {
		repo.rows[7] = &Producto{
			ID: 7, Nombre: "Mesa", CategoriaID: 2, Stock: 1, Precio: 50,
			Imagenes: []string{u1, u2}, VideoURL: pointer.To(v), Activo: true,
		}
	}

	tests := []struct {
		name    string
		input   Input
		images  []string
		video   *string
		removed []string
	}{
		{
			name:    "remove_and_append",
			input:   Input{RemoveImages: []string{u1}, ImageFiles: files("3.png")},
			images:  []string{u2, "http://cdn.test/images/3.png"},
			video:   pointer.To(v),
			removed: []string{u1},
		},
		{
			name:    "replace_images",
			input:   Input{ReplaceImages: true, ImageFiles: files("3.png")},
			images:  []string{"http://cdn.test/images/3.png"},
			video:   pointer.To(v),
			removed: []string{u1, u2},
		},
		{
			name:    "keep_images",
			input:   Input{KeepImages: []string{u2}, KeepSet: true},
			images:  []string{u2},
			video:   pointer.To(v),
			removed: []string{u1},
		},
		{
			name:    "remove_video",
			input:   Input{RemoveVideo: true},
			images:  []string{u1, u2},
			removed: []string{v},
		},
		{
			name:    "new_video_replaces_old",
			input:   Input{VideoFile: &multipart.FileHeader{Filename: "w.webm"}},
			images:  []string{u1, u2},
			video:   pointer.To("http://cdn.test/videos/w.webm"),
			removed: []string{v},
		},
		{
			name:   "fields_only",
			input:  Input{Stock: pointer.To(int64(0)), Marca: Text{Set: true, Value: pointer.To("Ikea")}},
			images: []string{u1, u2},
			video:  pointer.To(v),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, store := newTestService()
			seed(repo)

			message, err := service.Update(context.Background(), 7, tt.input)
			require.NoError(t, err)
			assert.Equal(t, "El producto 7 fue actualizado correctamente.", message)

			stored := repo.rows[7]
			assert.Equal(t, tt.images, stored.Imagenes)
			assert.Equal(t, tt.video, stored.VideoURL)
			assert.ElementsMatch(t, tt.removed, store.removed)
		})
	}

	failures := []struct {
		name   string
		id     int64
		input  Input
		status int
	}{
		{"not_found", 99, Input{}, http.StatusNotFound},
		{"too_many_images", 7, Input{ImageFiles: files("3.png", "4.png")}, http.StatusBadRequest},
		{"unknown_categoria", 7, Input{CategoriaID: pointer.To(int64(42))}, http.StatusBadRequest},
		{"empty_nombre", 7, Input{Nombre: pointer.To("")}, http.StatusBadRequest},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, store := newTestService()
			seed(repo)

			_, err := service.Update(context.Background(), tt.id, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.status, apperr.StatusOf(err))
			assert.Empty(t, store.saved)
			assert.Empty(t, store.removed)
			assert.Equal(t, []string{u1, u2}, repo.rows[7].Imagenes)
		})
	}
}

/*
TestService_Delete removes the row and its media.
*/
func TestService_Delete(t *testing.T) {
	service, repo, store := newTestService()
	repo.rows[3] = &Producto{ID: 3, Imagenes: []string{"http://cdn.test/images/a.png"}, VideoURL: pointer.To("http://cdn.test/videos/b.mp4")}

	message, err := service.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "El producto 3 fue eliminado correctamente.", message)
	assert.Empty(t, repo.rows)
	assert.Equal(t, []string{"http://cdn.test/images/a.png", "http://cdn.test/videos/b.mp4"}, store.removed)

	_, err = service.Delete(context.Background(), 3)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

/*
TestService_List wraps items with pagination metadata and echoed filters.
*/
func TestService_List(t *testing.T) {
	service, repo, _ := newTestService()
	repo.rows[1] = &Producto{ID: 1, Nombre: "A"}
	repo.rows[2] = &Producto{ID: 2, Nombre: "B"}

	result, err := service.List(context.Background(), Filter{SortBy: "precio", SortDir: "ASC"}, pagination.Params{Page: 1, All: true})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, pagination.Meta{Page: 1, PerPage: 2, Total: 2, TotalPages: 1}, result.Pagination)
	assert.Equal(t, "precio", result.FiltersApplied["sort_by"])
}
