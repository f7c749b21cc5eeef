package repository

import (
	"context"

	"tearoomcms/internal/docstore"
	"tearoomcms/internal/model"
)

// SettingsRepository defines data access for singleton settings documents.
type SettingsRepository interface {
	// SaveInstagram replaces the Instagram settings.
	SaveInstagram(ctx context.Context, s *model.InstagramSettings) error
	// Instagram returns the Instagram settings or ErrNotFound when none were saved.
	Instagram(ctx context.Context) (*model.InstagramSettings, error)
}

type settingsRepository struct {
	store docstore.Store
}

// NewSettingsRepository creates a SettingsRepository on store.
func NewSettingsRepository(store docstore.Store) SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) SaveInstagram(ctx context.Context, s *model.InstagramSettings) error {
	if err := check(model.CollectionSettings, s); err != nil {
		return err
	}
	return r.store.Set(ctx, model.CollectionSettings, model.InstagramSettingsID, s)
}

func (r *settingsRepository) Instagram(ctx context.Context) (*model.InstagramSettings, error) {
	return decodeOne[model.InstagramSettings](ctx, r.store, model.CollectionSettings, model.InstagramSettingsID)
}
