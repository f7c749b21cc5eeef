package repository

import (
	"context"

	"tearoomcms/internal/docstore"
	"tearoomcms/internal/model"
)

// CarouselRepository defines data access for carousel slides.
type CarouselRepository interface {
	// Add stores a new slide and returns its generated id.
	Add(ctx context.Context, img *model.CarouselImage) (string, error)
	// Get returns a slide by id.
	Get(ctx context.Context, id string) (*model.CarouselImage, error)
	// List returns every slide ordered by Order, highest first.
	List(ctx context.Context) ([]model.CarouselImage, error)
	// Delete removes a slide by id.
	Delete(ctx context.Context, id string) error
}

type carouselRepository struct {
	store docstore.Store
}

// NewCarouselRepository creates a CarouselRepository on store.
func NewCarouselRepository(store docstore.Store) CarouselRepository {
	return &carouselRepository{store: store}
}

func (r *carouselRepository) Add(ctx context.Context, img *model.CarouselImage) (string, error) {
	if err := check(model.CollectionCarousel, img); err != nil {
		return "", err
	}
	body := *img
	body.ID = ""
	return r.store.Add(ctx, model.CollectionCarousel, body)
}

func (r *carouselRepository) Get(ctx context.Context, id string) (*model.CarouselImage, error) {
	img, err := decodeOne[model.CarouselImage](ctx, r.store, model.CollectionCarousel, id)
	if err != nil {
		return nil, err
	}
	img.ID = id
	return img, nil
}

func (r *carouselRepository) List(ctx context.Context) ([]model.CarouselImage, error) {
	snaps, err := r.store.Query(ctx, model.CollectionCarousel, docstore.Query{OrderBy: "order", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeAll(model.CollectionCarousel, snaps, func(v *model.CarouselImage, id string) { v.ID = id }), nil
}

func (r *carouselRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, model.CollectionCarousel, id)
}
