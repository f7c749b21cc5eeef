package main

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/config"
	"tearoomcms/internal/content"
	"tearoomcms/internal/database"
	"tearoomcms/internal/database/migration"
	"tearoomcms/internal/docstore"
	mongostore "tearoomcms/internal/docstore/mongo"
	pgstore "tearoomcms/internal/docstore/postgres"
	"tearoomcms/internal/otel"
	"tearoomcms/internal/repository"
	"tearoomcms/internal/storage"
)

// openStore connects the document store selected by cfg.Driver.
func openStore(ctx context.Context, cfg *config.StoreConfig) (docstore.Store, error) {
	switch cfg.Driver {
	case "mongo":
		s, err := mongostore.New(ctx, cfg.URI, cfg.ProjectID)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		db, err := database.NewPostgres(cfg.URI, cfg.ProjectID, database.DefaultPoolOptions)
		if err != nil {
			return nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, database.Host(cfg.URI)); err != nil {
			_ = db.Close()
			return nil, err
		}
		return pgstore.New(db), nil
	case "memory":
		log.Warn().Msg("memory document store selected: content is lost on restart")
		return docstore.NewMemory(), nil
	default:
		return nil, errors.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// openFiles creates the file store selected by the repository configuration.
func openFiles(ctx context.Context, cfg *config.Config, client *http.Client) (storage.FileStore, error) {
	if cfg.FileBackend() == "s3" {
		m, err := storage.NewMinIO(ctx, cfg.Repo.S3, otel.NewTransport())
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	gh, err := storage.NewGitHub(cfg.Repo, client)
	if err != nil {
		return nil, err
	}
	return gh, nil
}

// repositories are the typed collections over one document store.
type repositories struct {
	carousel repository.CarouselRepository
	menus    repository.MenuRepository
	settings repository.SettingsRepository
	jobs     repository.JobRepository
}

func newRepositories(store docstore.Store) repositories {
	return repositories{
		carousel: repository.NewCarouselRepository(store),
		menus:    repository.NewMenuRepository(store),
		settings: repository.NewSettingsRepository(store),
		jobs:     repository.NewJobRepository(store),
	}
}

func (r repositories) sources() content.Sources {
	return content.Sources{
		Carousel: r.carousel,
		Menus:    r.menus,
		Settings: r.settings,
		Jobs:     r.jobs,
	}
}

// connect opens and instruments the document store. reg may be nil.
func connect(ctx context.Context, cfg *config.StoreConfig, reg prometheus.Registerer) (docstore.Store, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s document store", cfg.Driver)
	}
	if reg == nil {
		return store, nil
	}

	instrumented, err := docstore.Instrument(store, reg)
	if err != nil {
		_ = store.Close(ctx)
		return nil, errors.Wrap(err, "register store metrics")
	}
	return instrumented, nil
}
