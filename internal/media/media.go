// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package media stores uploaded product images, product videos and banners on
the local filesystem and maps them to public URLs.

# Layout

	MEDIA_BASE_DIR/images/{product}_{category}_{YYYYmmdd_HHMMSS}_{8hex}.{ext}
	MEDIA_BASE_DIR/videos/...
	MEDIA_BASE_DIR/banners/banner_{YYYYmmdd_HHMMSS}_{8hex}.{ext}

The type of a file is sniffed from its content, never taken from the client
header or the file extension.
*/
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/pkg/slug"
	"github.com/losreyesdelusado/backend/pkg/uuid"
)

// # Kinds and Limits

// Kind selects the validation rules and target directory of an upload.
type Kind string

const (
	KindImage  Kind = "image"
	KindVideo  Kind = "video"
	KindBanner Kind = "banner"
)

const (
	MaxImageBytes = 4 << 20
	MaxVideoBytes = 20 << 20

	// sniffLen is how much of the head is read for type detection.
	sniffLen = 3072

	stampLayout = "20060102_150405"
)

var imageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

var videoTypes = map[string]string{
	"video/mp4":        "mp4",
	"video/webm":       "webm",
	"video/ogg":        "ogv",
	"application/ogg":  "ogv",
	"video/quicktime":  "mov",
	"video/x-matroska": "mkv",
}

// Dir is the subdirectory (and URL segment) holding files of kind k.
func (k Kind) Dir() string {
	switch k {
	case KindVideo:
		return "videos"
	case KindBanner:
		return "banners"
	default:
		return "images"
	}
}

func (k Kind) limit() int64 {
	if k == KindVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

func (k Kind) types() map[string]string {
	if k == KindVideo {
		return videoTypes
	}
	return imageTypes
}

// # Storage

// Upload describes a stored file.
type Upload struct {
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Storage writes uploads under a base directory served at a base URL.
type Storage struct {
	baseDir  string
	baseURL  string
	location *time.Location
	now      func() time.Time
}

// NewStorage builds a [Storage]. Timestamps in file names use loc; nil means UTC.
func NewStorage(baseDir, baseURL string, loc *time.Location) *Storage {
	if loc == nil {
		loc = time.UTC
	}
	return &Storage{
		baseDir:  filepath.Clean(baseDir),
		baseURL:  strings.TrimRight(baseURL, "/"),
		location: loc,
		now:      time.Now,
	}
}

// ProductPrefix is the file name prefix of a product's media.
func ProductPrefix(productName, categoryName string) string {
	return slug.Or(productName, "producto") + "_" + slug.Or(categoryName, "categoria")
}

// BannerPrefix is the file name prefix of banner images.
const BannerPrefix = "banner"

/*
Save validates src against the rules of kind and writes it atomically.

Parameters:
  - kind: target rules and directory
  - name: client file name, used in error messages only
  - src: file content
  - prefix: file name prefix, see [ProductPrefix] and [BannerPrefix]

Returns:
  - *Upload: the public URL, detected MIME type and byte size
  - error: apperr.BadRequest for empty, oversized or disallowed files
*/
func (s *Storage) Save(kind Kind, name string, src io.Reader, prefix string) (*Upload, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("media_read_failed: %w", err)
	}
	if n == 0 {
		return nil, apperr.BadRequest(fmt.Sprintf("%s: archivo vacío.", displayName(name)))
	}
	head = head[:n]

	mimeType, ext, ok := match(kind, mimetype.Detect(head))
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("%s: tipo no permitido (%s).", displayName(name), mimetype.Detect(head).String()))
	}

	dir := filepath.Join(s.baseDir, kind.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media_mkdir_failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("media_create_failed: %w", err)
	}
	defer os.Remove(tmp.Name())

	limit := kind.limit()
	written, err := io.Copy(tmp, io.LimitReader(io.MultiReader(bytes.NewReader(head), src), limit+1))
	closeErr := tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("media_write_failed: %w", err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("media_close_failed: %w", closeErr)
	}
	if written > limit {
		return nil, apperr.BadRequest(fmt.Sprintf("%s: excede límite de %dMB.", displayName(name), limit>>20))
	}

	filename := s.filename(prefix, ext)
	if err := os.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		return nil, fmt.Errorf("media_rename_failed: %w", err)
	}

	return &Upload{
		URL:  s.baseURL + "/" + kind.Dir() + "/" + filename,
		Type: mimeType,
		Size: written,
	}, nil
}

// SaveFile opens a multipart file and passes it to [Storage.Save].
func (s *Storage) SaveFile(kind Kind, header *multipart.FileHeader, prefix string) (*Upload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("media_open_failed: %w", err)
	}
	defer file.Close()
	return s.Save(kind, header.Filename, file, prefix)
}

// DetectKind sniffs header and reports whether it is an allowed image or video.
func DetectKind(head []byte) (Kind, bool) {
	detected := mimetype.Detect(head)
	if _, _, ok := match(KindImage, detected); ok {
		return KindImage, true
	}
	if _, _, ok := match(KindVideo, detected); ok {
		return KindVideo, true
	}
	return "", false
}

/*
Remove deletes the local file behind a public URL this storage issued.

URLs outside the base URL are ignored and reported as not owned. A file that
is already gone is not an error.
*/
func (s *Storage) Remove(url string) (owned bool, err error) {
	path, ok := s.localPath(url)
	if !ok {
		return false, nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return true, fmt.Errorf("media_remove_failed: %w", err)
	}
	return true, nil
}

// localPath maps a public URL to a file inside one of the media directories.
func (s *Storage) localPath(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return "", false
	}
	dir, file, ok := strings.Cut(rest, "/")
	if !ok || file == "" || strings.ContainsAny(file, `/\`) || strings.HasPrefix(file, ".") {
		return "", false
	}
	switch dir {
	case KindImage.Dir(), KindVideo.Dir(), KindBanner.Dir():
		return filepath.Join(s.baseDir, dir, file), true
	}
	return "", false
}

func (s *Storage) filename(prefix, ext string) string {
	stamp := s.now().In(s.location).Format(stampLayout)
	return fmt.Sprintf("%s_%s_%s.%s", orDefault(prefix, "archivo"), stamp, uuid.ShortHex(), ext)
}

// match walks the detected type and its parents until an allowed type is found.
func match(kind Kind, detected *mimetype.MIME) (mimeType, ext string, ok bool) {
	allowed := kind.types()
	for m := detected; m != nil; m = m.Parent() {
		if ext, ok := allowed[m.String()]; ok {
			return m.String(), ext, true
		}
	}
	return "", "", false
}

func displayName(name string) string {
	return orDefault(filepath.Base(name), "archivo")
}

func orDefault(value, fallback string) string {
	if value == "" || value == "." {
		return fallback
	}
	return value
}
