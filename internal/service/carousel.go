package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"tearoomcms/internal/model"
	"tearoomcms/internal/notify"
	"tearoomcms/internal/repository"
	"tearoomcms/internal/storage"
)

// CarouselService defines the carousel use cases.
type CarouselService interface {
	// Upload validates f, stores it under a timestamped path and adds a slide ordered by the upload time.
	Upload(ctx context.Context, f *File) (*model.CarouselImage, error)
	// List returns the slides, newest first.
	List(ctx context.Context) ([]model.CarouselImage, error)
	// Delete removes the slide image (best effort) and then the slide.
	Delete(ctx context.Context, id string) error
}

type carouselService struct {
	files    storage.FileStore
	repo     repository.CarouselRepository
	notifier notify.Notifier
	now      Clock
}

// NewCarouselService constructs a CarouselService.
func NewCarouselService(files storage.FileStore, repo repository.CarouselRepository, notifier notify.Notifier, now Clock) CarouselService {
	return &carouselService{files: files, repo: repo, notifier: notifier, now: now}
}

func validateCarouselFile(f *File) error {
	if f == nil || f.Reader == nil {
		return invalid(msgSelectImage)
	}
	if !strings.HasPrefix(f.ContentType, "image/") {
		return invalid(msgInvalidImage)
	}
	if f.Size > MaxCarouselSize {
		return invalid(msgImageTooLarge)
	}
	return nil
}

func (s *carouselService) Upload(ctx context.Context, f *File) (*model.CarouselImage, error) {
	if err := validateCarouselFile(f); err != nil {
		return nil, err
	}

	now := s.now()
	ts := now.UnixMilli()
	path := fmt.Sprintf("%s/%d-%s", carouselDir, ts, f.Filename)

	url, err := s.files.Put(ctx, path, f.Reader, storage.PutOptions{Size: f.Size, ContentType: f.ContentType})
	if err != nil {
		return nil, failed("upload image", err)
	}

	img := &model.CarouselImage{
		URL:        url,
		Filename:   f.Filename,
		Path:       path,
		UploadDate: now.UTC(),
		Order:      ts,
	}
	id, err := s.repo.Add(ctx, img)
	if err != nil {
		return nil, failed("upload image", err)
	}
	img.ID = id

	log.Info().Str("id", id).Str("path", path).Msg("carousel image uploaded")
	s.notifier.Notify(ctx)
	return img, nil
}

func (s *carouselService) List(ctx context.Context) ([]model.CarouselImage, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, failed("load images", err)
	}
	return items, nil
}

func (s *carouselService) Delete(ctx context.Context, id string) error {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return failed("delete image", err)
	}

	storage.DeleteQuietly(ctx, s.files, img.Path)

	if err := s.repo.Delete(ctx, id); err != nil {
		return failed("delete image", err)
	}

	log.Info().Str("id", id).Msg("carousel image deleted")
	s.notifier.Notify(ctx)
	return nil
}
