// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package banner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/losreyesdelusado/backend/internal/media"
	"github.com/losreyesdelusado/backend/internal/platform/ctxutil"
	"github.com/losreyesdelusado/backend/internal/platform/validate"
)

// Service implements the banner use cases.
type Service struct {
	repo  Repository
	media MediaStore
}

// NewService constructs a banner [Service].
func NewService(repo Repository, store MediaStore) *Service {
	return &Service{repo: repo, media: store}
}

func (service *Service) List(ctx context.Context) ([]*Banner, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, id int64) (*Banner, error) {
	return service.repo.FindByID(ctx, id)
}

// Create stores the uploaded image, or accepts an external http(s) URL.
func (service *Service) Create(ctx context.Context, input Input) (*Banner, error) {
	url, saved, err := service.resolve(input)
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(ctx, url)
	if err != nil {
		service.discard(ctx, saved)
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "banner_created", slog.Int64("id_banner", created.ID))
	return created, nil
}

// Update points banner id at a new image and removes the previous local file.
func (service *Service) Update(ctx context.Context, id int64, input Input) (string, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, saved, err := service.resolve(input)
	if err != nil {
		return "", err
	}

	if err := service.repo.Update(ctx, id, url); err != nil {
		service.discard(ctx, saved)
		return "", err
	}
	if current.URL != url {
		service.discard(ctx, current.URL)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "banner_updated", slog.Int64("id_banner", id))
	return fmt.Sprintf("El banner %d fue actualizado correctamente.", id), nil
}

func (service *Service) Delete(ctx context.Context, id int64) (string, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := service.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	service.discard(ctx, current.URL)

	ctxutil.GetLogger(ctx).InfoContext(ctx, "banner_deleted", slog.Int64("id_banner", id))
	return fmt.Sprintf("El banner %d fue eliminado correctamente.", id), nil
}

// resolve returns the URL to store and, for uploads, the URL to undo.
func (service *Service) resolve(input Input) (url, saved string, err error) {
	if input.File != nil {
		upload, err := service.media.SaveFile(media.KindBanner, input.File, media.BannerPrefix)
		if err != nil {
			return "", "", err
		}
		return upload.URL, upload.URL, nil
	}

	url = strings.TrimSpace(input.URL)
	if url == "" {
		return "", "", validate.FieldError(FieldBanner, MsgURLRequired)
	}
	if !validate.IsHTTPURL(url) {
		return "", "", validate.FieldError(FieldBanner, MsgURLInvalid)
	}
	return url, "", nil
}

func (service *Service) discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if _, err := service.media.Remove(url); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "media_remove_failed",
			slog.String("url", url),
			slog.Any("error", err),
		)
	}
}
