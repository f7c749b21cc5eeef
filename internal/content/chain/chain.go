// Package chain runs producers in order and keeps the first one that yields a value.
package chain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSkip is returned by a step that has nothing to offer. It is not logged.
	ErrSkip = errors.New("chain: skip")

	// ErrExhausted is returned by First when no step produced a value.
	ErrExhausted = errors.New("chain: no step produced a value")
)

// Step is one producer of the chain.
type Step[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// First runs steps in order and returns the value and name of the first step that succeeds.
// Failing steps are logged at warn level and the chain moves on.
func First[T any](ctx context.Context, steps ...Step[T]) (T, string, error) {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, "", err
		}

		v, err := s.Run(ctx)
		if err == nil {
			return v, s.Name, nil
		}
		if !errors.Is(err, ErrSkip) {
			log.Warn().Err(err).Str("step", s.Name).Msg("chain step failed, trying next")
		}
	}

	var zero T
	return zero, "", ErrExhausted
}
