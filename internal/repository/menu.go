package repository

import (
	"context"

	"tearoomcms/internal/docstore"
	"tearoomcms/internal/model"
)

// MenuRepository defines data access for menus. There is at most one menu per type,
// stored under the type as document id.
type MenuRepository interface {
	// Set stores m under its type, replacing the previous menu of that type.
	Set(ctx context.Context, m *model.Menu) error
	// Get returns the menu of the given type.
	Get(ctx context.Context, t model.MenuType) (*model.Menu, error)
	// List returns every stored menu.
	List(ctx context.Context) ([]model.Menu, error)
	// Delete removes the menu of the given type.
	Delete(ctx context.Context, t model.MenuType) error
}

type menuRepository struct {
	store docstore.Store
}

// NewMenuRepository creates a MenuRepository on store.
func NewMenuRepository(store docstore.Store) MenuRepository {
	return &menuRepository{store: store}
}

func (r *menuRepository) Set(ctx context.Context, m *model.Menu) error {
	if err := check(model.CollectionMenus, m); err != nil {
		return err
	}
	return r.store.Set(ctx, model.CollectionMenus, string(m.Type), m)
}

func (r *menuRepository) Get(ctx context.Context, t model.MenuType) (*model.Menu, error) {
	return decodeOne[model.Menu](ctx, r.store, model.CollectionMenus, string(t))
}

func (r *menuRepository) List(ctx context.Context) ([]model.Menu, error) {
	snaps, err := r.store.List(ctx, model.CollectionMenus)
	if err != nil {
		return nil, err
	}
	return decodeAll[model.Menu](model.CollectionMenus, snaps, nil), nil
}

func (r *menuRepository) Delete(ctx context.Context, t model.MenuType) error {
	return r.store.Delete(ctx, model.CollectionMenus, string(t))
}
