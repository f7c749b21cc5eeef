// Package content serves the public site data. Every read goes through an ordered fallback
// chain: the cache of the current refresh cycle, the live document store, the static JSON files
// produced by the site build, and finally an empty value. Reads never fail.
package content

import (
	"context"
	"encoding/json"
	"io/fs"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/content/chain"
	"tearoomcms/internal/model"
	"tearoomcms/internal/repository"
)

// Kind names a public data set. It is also the base name of its static file.
type Kind string

const (
	KindCarousel  Kind = "carousel"
	KindMenus     Kind = "menus"
	KindJobs      Kind = "jobs"
	KindInstagram Kind = "instagram"
)

// Kinds lists every public data set.
var Kinds = []Kind{KindCarousel, KindMenus, KindJobs, KindInstagram}

// ErrUnknownKind is returned by Fetch for names outside Kinds.
var ErrUnknownKind = errors.New("unknown content kind")

// DefaultApplicationEmail receives job applications when no contact email is configured.
const DefaultApplicationEmail = "harriet@thewizardtearoom.co.uk"

// Sources are the live repositories. Any of them may be nil, in which case that kind is served
// from static data only.
type Sources struct {
	Carousel repository.CarouselRepository
	Menus    repository.MenuRepository
	Settings repository.SettingsRepository
	Jobs     repository.JobRepository
}

// Manager reads public content through the fallback chain and caches it until the next refresh.
type Manager struct {
	src          Sources
	static       fs.FS
	feed         Feed
	contactEmail string
	now          func() time.Time

	mu    sync.RWMutex
	cache map[Kind]any
	grid  []InstagramTile
}

// Option configures a Manager.
type Option func(*Manager)

// WithFeed sets the Instagram media source.
func WithFeed(f Feed) Option {
	return func(m *Manager) { m.feed = f }
}

// WithContactEmail sets the address used for job applications.
func WithContactEmail(email string) Option {
	return func(m *Manager) {
		if email != "" {
			m.contactEmail = email
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager. static holds <kind>.json files and may be nil.
func NewManager(src Sources, static fs.FS, opts ...Option) *Manager {
	m := &Manager{
		src:          src,
		static:       static,
		contactEmail: DefaultApplicationEmail,
		now:          time.Now,
		cache:        make(map[Kind]any),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// ContactEmail returns the address used for job applications.
func (m *Manager) ContactEmail() string {
	return m.contactEmail
}

// Carousel returns the slides, highest order first.
func (m *Manager) Carousel(ctx context.Context) []model.PublicSlide {
	return SortSlides(fetch(ctx, m, KindCarousel, m.liveCarousel, []model.PublicSlide{}))
}

// Menus returns the current menu of each type that has one.
func (m *Manager) Menus(ctx context.Context) model.PublicMenus {
	return fetch(ctx, m, KindMenus, m.liveMenus, model.PublicMenus{})
}

// Jobs returns the active postings, newest first.
func (m *Manager) Jobs(ctx context.Context) []model.PublicJob {
	return ActiveJobs(fetch(ctx, m, KindJobs, m.liveJobs, []model.PublicJob{}))
}

// Instagram returns the feed configuration. A missing configuration is disabled.
func (m *Manager) Instagram(ctx context.Context) model.PublicInstagram {
	return fetch(ctx, m, KindInstagram, m.liveInstagram, model.PublicInstagram{})
}

// Fetch returns the public data of kind in its JSON shape.
func (m *Manager) Fetch(ctx context.Context, kind Kind) (any, error) {
	switch kind {
	case KindCarousel:
		return m.Carousel(ctx), nil
	case KindMenus:
		return m.Menus(ctx), nil
	case KindJobs:
		return m.Jobs(ctx), nil
	case KindInstagram:
		return m.Instagram(ctx), nil
	default:
		return nil, errors.Wrap(ErrUnknownKind, string(kind))
	}
}

// InstagramGrid returns the tiles of the Instagram section: up to six recent posts when the feed
// is enabled and reachable, placeholders otherwise. The result, placeholders included, is kept
// until the next Refresh.
func (m *Manager) InstagramGrid(ctx context.Context) []InstagramTile {
	settings := m.Instagram(ctx)
	if !settings.Enabled || settings.AccessToken == "" || m.feed == nil {
		return PlaceholderTiles()
	}

	m.mu.RLock()
	grid := m.grid
	m.mu.RUnlock()
	if grid != nil {
		return grid
	}

	posts, err := m.feed.Recent(ctx, settings.AccessToken, InstagramGridSize)
	if err != nil {
		log.Warn().Err(err).Msg("instagram feed unavailable, showing placeholders until next refresh")
		grid = PlaceholderTiles()
	} else {
		grid = InstagramTiles(posts)
	}

	m.mu.Lock()
	m.grid = grid
	m.mu.Unlock()

	return grid
}

// Refresh drops the cached values and reloads every kind.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	m.cache = make(map[Kind]any)
	m.grid = nil
	m.mu.Unlock()

	m.Carousel(ctx)
	m.Menus(ctx)
	m.Jobs(ctx)
	m.Instagram(ctx)

	log.Debug().Msg("public content refreshed")
}

// Run loads all content and then refreshes it every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	m.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

func fetch[T any](ctx context.Context, m *Manager, kind Kind, live func(context.Context) (T, error), empty T) T {
	v, from, err := chain.First(ctx,
		chain.Step[T]{Name: "cache", Run: func(context.Context) (T, error) { return cached[T](m, kind) }},
		chain.Step[T]{Name: "live", Run: live},
		chain.Step[T]{Name: "static", Run: func(context.Context) (T, error) { return readStatic[T](m.static, kind) }},
	)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("no content source available, serving empty")
		return empty
	}

	if from != "cache" {
		m.mu.Lock()
		m.cache[kind] = v
		m.mu.Unlock()
		log.Debug().Str("kind", string(kind)).Str("source", from).Msg("content loaded")
	}
	return v
}

func cached[T any](m *Manager, kind Kind) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, ok := m.cache[kind].(T); ok {
		return v, nil
	}
	var zero T
	return zero, chain.ErrSkip
}

func readStatic[T any](fsys fs.FS, kind Kind) (T, error) {
	var v T
	if fsys == nil {
		return v, chain.ErrSkip
	}

	b, err := fs.ReadFile(fsys, string(kind)+".json")
	if err != nil {
		return v, errors.Wrapf(err, "read static %s", kind)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, errors.Wrapf(err, "decode static %s", kind)
	}
	return v, nil
}

func (m *Manager) formatDate(t time.Time) string {
	if t.IsZero() {
		t = m.now()
	}
	return t.UTC().Format(time.RFC3339)
}

func (m *Manager) liveCarousel(ctx context.Context) ([]model.PublicSlide, error) {
	if m.src.Carousel == nil {
		return nil, chain.ErrSkip
	}
	items, err := m.src.Carousel.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicSlide, 0, len(items))
	for _, it := range items {
		order := it.Order
		if order == 0 {
			order = m.now().UnixMilli()
		}
		out = append(out, model.PublicSlide{
			ID:         it.ID,
			URL:        it.URL,
			Filename:   it.Filename,
			Order:      order,
			UploadDate: m.formatDate(it.UploadDate),
		})
	}
	return out, nil
}

func (m *Manager) liveMenus(ctx context.Context) (model.PublicMenus, error) {
	if m.src.Menus == nil {
		return nil, chain.ErrSkip
	}
	menus, err := m.src.Menus.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(model.PublicMenus, len(menus))
	for _, mn := range menus {
		out[mn.Type] = model.PublicMenu{
			URL:        mn.URL,
			Filename:   mn.Filename,
			Type:       mn.Type,
			FileType:   mn.FileType,
			UploadDate: m.formatDate(mn.UploadDate),
		}
	}
	return out, nil
}

func (m *Manager) liveJobs(ctx context.Context) ([]model.PublicJob, error) {
	if m.src.Jobs == nil {
		return nil, chain.ErrSkip
	}
	jobs, err := m.src.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, model.PublicJob{
			ID:               j.ID,
			Title:            j.Title,
			Type:             j.Type,
			Description:      j.Description,
			Salary:           j.Salary,
			IsActive:         j.Active,
			DatePosted:       m.formatDate(j.PostedDate),
			ApplicationEmail: m.contactEmail,
		})
	}
	return ActiveJobs(out), nil
}

func (m *Manager) liveInstagram(ctx context.Context) (model.PublicInstagram, error) {
	if m.src.Settings == nil {
		return model.PublicInstagram{}, chain.ErrSkip
	}
	s, err := m.src.Settings.Instagram(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return model.PublicInstagram{}, chain.ErrSkip
	}
	if err != nil {
		return model.PublicInstagram{}, err
	}
	return model.PublicInstagram{Enabled: s.Enabled, UserID: s.UserID, AccessToken: s.AccessToken}, nil
}
