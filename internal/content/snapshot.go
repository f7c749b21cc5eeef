package content

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/content/chain"
	"tearoomcms/internal/model"
)

// Snapshot reads every kind from the live store only. Unlike the page reads it fails when the store
// does, so a broken store never overwrites good static files with empty ones.
func (m *Manager) Snapshot(ctx context.Context) (map[Kind]any, error) {
	out := make(map[Kind]any, len(Kinds))

	carousel, err := m.liveCarousel(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot carousel")
	}
	out[KindCarousel] = SortSlides(carousel)

	menus, err := m.liveMenus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot menus")
	}
	out[KindMenus] = menus

	jobs, err := m.liveJobs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot jobs")
	}
	out[KindJobs] = jobs

	ig, err := m.liveInstagram(ctx)
	switch {
	case errors.Is(err, chain.ErrSkip):
		out[KindInstagram] = model.PublicInstagram{}
	case err != nil:
		return nil, errors.Wrap(err, "snapshot instagram")
	default:
		out[KindInstagram] = ig
	}

	return out, nil
}

// WriteSnapshot writes <kind>.json for every kind into dir.
func (m *Manager) WriteSnapshot(ctx context.Context, dir string) error {
	snap, err := m.Snapshot(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create snapshot dir")
	}

	for _, kind := range Kinds {
		b, err := json.MarshalIndent(snap[kind], "", "  ")
		if err != nil {
			return errors.Wrapf(err, "encode %s", kind)
		}
		p := filepath.Join(dir, string(kind)+".json")
		if err := os.WriteFile(p, append(b, '\n'), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", p)
		}
		log.Info().Str("file", p).Msg("snapshot written")
	}
	return nil
}
