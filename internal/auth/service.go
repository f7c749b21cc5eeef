// Package auth signs the single administrator in through a delegated identity provider and keeps
// the admin session in a signed cookie.
package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Service signs in the administrator. Only AdminEmail may use the admin panel.
type Service struct {
	provider   PasswordProvider
	sessions   *Sessions
	adminEmail string
}

// NewService creates the sign-in service.
func NewService(provider PasswordProvider, sessions *Sessions, adminEmail string) *Service {
	return &Service{provider: provider, sessions: sessions, adminEmail: adminEmail}
}

// Sessions returns the session signer.
func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// Login authenticates with the provider and returns a session token.
// Identities other than the administrator are rejected with ErrAccessDenied and get no session.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	id, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		log.Info().Err(err).Str("email", email).Msg("sign-in failed")
		return "", err
	}

	if !s.allowed(id.Email) {
		log.Warn().Str("email", id.Email).Msg("unauthorized identity signed out")
		return "", ErrAccessDenied
	}

	return s.sessions.Issue(id.Email)
}

// Authorize verifies a session token and the allow-list and returns the administrator email.
func (s *Service) Authorize(token string) (string, error) {
	claims, err := s.sessions.Verify(token)
	if err != nil {
		return "", err
	}
	if !s.allowed(claims.Email) {
		return "", ErrAccessDenied
	}
	return claims.Email, nil
}

func (s *Service) allowed(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), s.adminEmail)
}
