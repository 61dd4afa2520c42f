// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package banner

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/apperr"
)

type memoryRepo struct {
	rows      map[int64]*Banner
	nextID    int64
	failWrite error
}

func (m *memoryRepo) List(context.Context) ([]*Banner, error) {
	out := []*Banner{}
	for id := m.nextID; id > 0; id-- {
		if row, ok := m.rows[id]; ok {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*Banner, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound(id)
	}
	copied := *row
	return &copied, nil
}

func (m *memoryRepo) Create(_ context.Context, url string) (*Banner, error) {
	if m.failWrite != nil {
		return nil, m.failWrite
	}
	m.nextID++
	m.rows[m.nextID] = &Banner{ID: m.nextID, URL: url}
	return &Banner{ID: m.nextID, URL: url}, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, url string) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.rows[id].URL = url
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

type fakeMedia struct {
	kinds   []media.Kind
	removed []string
}

func (f *fakeMedia) SaveFile(kind media.Kind, header *multipart.FileHeader, prefix string) (*media.Upload, error) {
	f.kinds = append(f.kinds, kind)
	return &media.Upload{URL: "http://cdn.test/banners/" + prefix + "_" + header.Filename}, nil
}

func (f *fakeMedia) Remove(url string) (bool, error) {
	f.removed = append(f.removed, url)
	return true, nil
}

func newTestService() (*Service, *memoryRepo, *fakeMedia) {
	repo := &memoryRepo{rows: map[int64]*Banner{}}
	store := &fakeMedia{}
	return NewService(repo, store), repo, store
}

/*
TestService_Create accepts uploads or external URLs.
*/
func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		url     string
		message string
	}{
		{"upload", Input{File: &multipart.FileHeader{Filename: "a.png"}, URL: "ignored"}, "http://cdn.test/banners/banner_a.png", ""},
		{"external_url", Input{URL: "  https://img.test/b.jpg "}, "https://img.test/b.jpg", ""},
		{"missing", Input{}, "", MsgURLRequired},
		{"not_http", Input{URL: "javascript:alert(1)"}, "", MsgURLInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, store := newTestService()

			created, err := service.Create(context.Background(), tt.input)
			if tt.message != "" {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
				details := apperr.As(err).Details
				require.Len(t, details, 1)
				assert.Equal(t, tt.message, details[0].Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.url, created.URL)
			if tt.input.File != nil {
				assert.Equal(t, []media.Kind{media.KindBanner}, store.kinds)
			}
		})
	}

	t.Run("insert_failure_removes_upload", func(t *testing.T) {
		service, repo, store := newTestService()
		repo.failWrite = errors.New("boom")

		_, err := service.Create(context.Background(), Input{File: &multipart.FileHeader{Filename: "a.png"}})
		require.Error(t, err)
		assert.Equal(t, []string{"http://cdn.test/banners/banner_a.png"}, store.removed)
	})
}

/*
TestService_UpdateDelete replaces and removes the stored image.
*/
func TestService_UpdateDelete(t *testing.T) {
	service, repo, store := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, Input{File: &multipart.FileHeader{Filename: "old.png"}})
	require.NoError(t, err)

	message, err := service.Update(ctx, created.ID, Input{URL: "https://img.test/new.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "El banner 1 fue actualizado correctamente.", message)
	assert.Equal(t, "https://img.test/new.jpg", repo.rows[1].URL)
	assert.Equal(t, []string{"http://cdn.test/banners/banner_old.png"}, store.removed)

	_, err = service.Update(ctx, 9, Input{URL: "https://img.test/x.jpg"})
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
	assert.Equal(t, "Banner 9 no encontrado.", err.Error())

	message, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "El banner 1 fue eliminado correctamente.", message)
	assert.Empty(t, repo.rows)
	assert.Equal(t, "https://img.test/new.jpg", store.removed[len(store.removed)-1])

	_, err = service.Delete(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
