package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/model"
	"tearoomcms/internal/notify"
	"tearoomcms/internal/repository"
)

// InstagramService manages the Instagram feed credentials.
type InstagramService interface {
	// Save stores the credentials and enables the feed.
	Save(ctx context.Context, accessToken, userID string) (*model.InstagramSettings, error)
	// Get returns the stored credentials, or nil when none were saved yet.
	Get(ctx context.Context) (*model.InstagramSettings, error)
}

type instagramService struct {
	repo     repository.SettingsRepository
	notifier notify.Notifier
	now      Clock
}

// NewInstagramService constructs an InstagramService.
func NewInstagramService(repo repository.SettingsRepository, notifier notify.Notifier, now Clock) InstagramService {
	return &instagramService{repo: repo, notifier: notifier, now: now}
}

func (s *instagramService) Save(ctx context.Context, accessToken, userID string) (*model.InstagramSettings, error) {
	accessToken = strings.TrimSpace(accessToken)
	userID = strings.TrimSpace(userID)
	if accessToken == "" || userID == "" {
		return nil, invalid(msgInstagramFields)
	}

	settings := &model.InstagramSettings{
		AccessToken: accessToken,
		UserID:      userID,
		UpdatedDate: s.now().UTC(),
		Enabled:     true,
	}
	if err := s.repo.SaveInstagram(ctx, settings); err != nil {
		return nil, failed("save credentials", err)
	}

	log.Info().Str("user_id", userID).Msg("instagram credentials saved")
	s.notifier.Notify(ctx)
	return settings, nil
}

func (s *instagramService) Get(ctx context.Context) (*model.InstagramSettings, error) {
	settings, err := s.repo.Instagram(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, failed("load Instagram settings", err)
	}
	return settings, nil
}
