// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package media

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifHeader = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	dir := t.TempDir()
	storage := NewStorage(dir, "http://cdn.test/uploads/", time.UTC)
	storage.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	return storage, dir
}

/*
TestStorage_Save checks naming, layout and content sniffing.
*/
func TestStorage_Save(t *testing.T) {
	storage, dir := newTestStorage(t)

	upload, err := storage.Save(KindImage, "foto.bin", bytes.NewReader(pngHeader), ProductPrefix("Cámara Canon", "Fotografía"))
	require.NoError(t, err)

	assert.Equal(t, "image/png", upload.Type)
	assert.Equal(t, int64(len(pngHeader)), upload.Size)
	assert.Regexp(t,
		regexp.MustCompile(`^http://cdn\.test/uploads/images/camara-canon_fotografia_20260304_050607_[0-9a-f]{8}\.png$`),
		upload.URL)

	stored := filepath.Join(dir, "images", filepath.Base(upload.URL))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, content)

	banner, err := storage.Save(KindBanner, "b.gif", bytes.NewReader(gifHeader), BannerPrefix)
	require.NoError(t, err)
	assert.Contains(t, banner.URL, "/uploads/banners/banner_20260304_050607_")
	assert.True(t, strings.HasSuffix(banner.URL, ".gif"))
}

/*
TestStorage_SaveRejects covers empty, disallowed and oversized files.
*/
func TestStorage_SaveRejects(t *testing.T) {
	oversized := append(append([]byte{}, pngHeader...), make([]byte, MaxImageBytes)...)

	tests := []struct {
		name    string
		kind    Kind
		content []byte
		message string
	}{
		{"empty", KindImage, nil, "a.png: archivo vacío."},
		{"text_as_image", KindImage, []byte("hola, no soy una imagen"), "a.png: tipo no permitido"},
		{"image_as_video", KindVideo, pngHeader, "a.png: tipo no permitido (image/png)."},
		{"oversized", KindImage, oversized, "a.png: excede límite de 4MB."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, dir := newTestStorage(t)

			_, err := storage.Save(tt.kind, "a.png", bytes.NewReader(tt.content), "p")
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
			assert.Contains(t, err.Error(), tt.message)

			entries, _ := os.ReadDir(filepath.Join(dir, tt.kind.Dir()))
			assert.Empty(t, entries, "no file may be left behind")
		})
	}
}

/*
TestStorage_Remove only touches files under its own base URL.
*/
func TestStorage_Remove(t *testing.T) {
	storage, dir := newTestStorage(t)

	upload, err := storage.Save(KindImage, "x.png", bytes.NewReader(pngHeader), "p")
	require.NoError(t, err)

	owned, err := storage.Remove(upload.URL)
	require.NoError(t, err)
	assert.True(t, owned)
	_, statErr := os.Stat(filepath.Join(dir, "images", filepath.Base(upload.URL)))
	assert.True(t, os.IsNotExist(statErr))

	owned, err = storage.Remove(upload.URL)
	assert.NoError(t, err, "already removed")
	assert.True(t, owned)

	for _, foreign := range []string{
		"https://elsewhere.test/images/a.png",
		"http://cdn.test/uploads/secret/a.png",
		"http://cdn.test/uploads/images/../../etc/passwd",
	} {
		owned, err := storage.Remove(foreign)
		assert.NoError(t, err)
		assert.False(t, owned, foreign)
	}
}

/*
TestDetectKind classifies sniffed heads.
*/
func TestDetectKind(t *testing.T) {
	kind, ok := DetectKind(pngHeader)
	assert.True(t, ok)
	assert.Equal(t, KindImage, kind)

	_, ok = DetectKind([]byte("plain text"))
	assert.False(t, ok)
}
