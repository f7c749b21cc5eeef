package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"tearoomcms/internal/model"
	"tearoomcms/internal/notify"
	"tearoomcms/internal/repository"
	"tearoomcms/internal/storage"
)

var menuContentTypes = map[string]string{
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	model.FileTypePDF: "pdf",
}

// MenuService defines the menu use cases. Each menu type has one file at a fixed path that is
// overwritten on every upload.
type MenuService interface {
	Upload(ctx context.Context, t model.MenuType, f *File) (*model.Menu, error)
	List(ctx context.Context) ([]model.Menu, error)
	Delete(ctx context.Context, t model.MenuType) error
}

type menuService struct {
	files    storage.FileStore
	repo     repository.MenuRepository
	notifier notify.Notifier
	now      Clock
}

// NewMenuService constructs a MenuService.
func NewMenuService(files storage.FileStore, repo repository.MenuRepository, notifier notify.Notifier, now Clock) MenuService {
	return &menuService{files: files, repo: repo, notifier: notifier, now: now}
}

func validateMenuFile(t model.MenuType, f *File) error {
	if f == nil || f.Reader == nil {
		return invalid(msgSelectFile)
	}
	if !t.Valid() {
		return invalid(msgInvalidMenuType)
	}
	if _, ok := menuContentTypes[f.ContentType]; !ok {
		return invalid(msgInvalidMenuFile)
	}
	if f.Size > MaxMenuSize {
		return invalid(msgMenuTooLarge)
	}
	return nil
}

// menuPath returns assets/images/menus/<type>-menu.<ext>, taking the extension from the file name
// and falling back to the content type.
func menuPath(t model.MenuType, f *File) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(f.Filename)), ".")
	if ext == "" {
		ext = menuContentTypes[f.ContentType]
	}
	return fmt.Sprintf("%s/%s-menu.%s", menuDir, t, ext)
}

func (s *menuService) Upload(ctx context.Context, t model.MenuType, f *File) (*model.Menu, error) {
	if err := validateMenuFile(t, f); err != nil {
		return nil, err
	}

	p := menuPath(t, f)
	url, err := s.files.Put(ctx, p, f.Reader, storage.PutOptions{Size: f.Size, ContentType: f.ContentType})
	if err != nil {
		return nil, failed("upload menu", err)
	}

	m := &model.Menu{
		URL:        url,
		Filename:   f.Filename,
		Path:       p,
		UploadDate: s.now().UTC(),
		Type:       t,
		FileType:   f.ContentType,
	}
	if err := s.repo.Set(ctx, m); err != nil {
		return nil, failed("upload menu", err)
	}

	log.Info().Str("type", string(t)).Str("path", p).Msg("menu uploaded")
	s.notifier.Notify(ctx)
	return m, nil
}

func (s *menuService) List(ctx context.Context) ([]model.Menu, error) {
	menus, err := s.repo.List(ctx)
	if err != nil {
		return nil, failed("load menus", err)
	}
	return menus, nil
}

func (s *menuService) Delete(ctx context.Context, t model.MenuType) error {
	if !t.Valid() {
		return invalid(msgInvalidMenuType)
	}

	m, err := s.repo.Get(ctx, t)
	if err != nil {
		return failed("delete menu", err)
	}

	storage.DeleteQuietly(ctx, s.files, m.Path)

	if err := s.repo.Delete(ctx, t); err != nil {
		return failed("delete menu", err)
	}

	log.Info().Str("type", string(t)).Msg("menu deleted")
	s.notifier.Notify(ctx)
	return nil
}
