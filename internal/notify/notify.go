// Package notify tells the external site build pipeline that content changed.
package notify

import (
	"context"
	"net/http"

	"github.com/google/go-github/v66/github"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/config"
	"tearoomcms/internal/storage"
)

// EventContentUpdate is the repository dispatch event type sent after every content mutation.
const EventContentUpdate = "content-update"

// Notifier is implemented by build triggers.
type Notifier interface {
	// Notify fires the trigger. It never fails: errors are logged and counted only.
	Notify(ctx context.Context)
}

// Dispatch fires a GitHub repository dispatch event.
type Dispatch struct {
	client   *github.Client
	owner    string
	repo     string
	triggers *prometheus.CounterVec
}

var _ Notifier = (*Dispatch)(nil)

// NewDispatch creates a repository dispatch notifier and registers build_trigger_total on reg.
func NewDispatch(cfg *config.RepoConfig, client *http.Client, reg prometheus.Registerer) (*Dispatch, error) {
	gh, err := storage.NewGitHubClient(cfg, client)
	if err != nil {
		return nil, err
	}

	triggers := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "build_trigger_total",
			Help: "Total number of build trigger attempts by result.",
		},
		[]string{"result"},
	)
	if err := reg.Register(triggers); err != nil {
		return nil, err
	}

	return &Dispatch{
		client:   gh,
		owner:    cfg.Owner,
		repo:     cfg.Repo,
		triggers: triggers,
	}, nil
}

// Notify posts the dispatch event. No retry.
func (d *Dispatch) Notify(ctx context.Context) {
	_, _, err := d.client.Repositories.Dispatch(ctx, d.owner, d.repo, github.DispatchRequestOptions{
		EventType: EventContentUpdate,
	})
	if err != nil {
		d.triggers.WithLabelValues("error").Inc()
		log.Warn().Err(storage.APIError(err)).Str("repo", d.owner+"/"+d.repo).Msg("site update trigger failed")
		return
	}
	d.triggers.WithLabelValues("ok").Inc()
	log.Info().Msg("site update triggered")
}

// Nop is a Notifier that does nothing.
type Nop struct{}

func (Nop) Notify(context.Context) {}
