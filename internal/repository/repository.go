// Package repository gives typed access to the four CMS collections. Documents are parsed and
// validated here, so callers never see a loosely-typed body.
package repository

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/docstore"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = docstore.ErrNotFound
	// ErrInvalidDocument is returned when a document fails validation on write or read.
	ErrInvalidDocument = errors.New("invalid document")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

func check(collection string, v any) error {
	if err := documentValidator().Struct(v); err != nil {
		return errors.Wrapf(ErrInvalidDocument, "%s: %v", collection, err)
	}
	return nil
}

// decodeAll converts snapshots into typed records. Documents that cannot be decoded or fail
// validation are logged and skipped; one bad document never hides the rest of the collection.
func decodeAll[T any](collection string, snaps []docstore.Snapshot, setID func(*T, string)) []T {
	out := make([]T, 0, len(snaps))
	for _, s := range snaps {
		var v T
		if err := s.DataTo(&v); err != nil {
			log.Warn().Err(err).Str("collection", collection).Str("id", s.ID).Msg("skipping undecodable document")
			continue
		}
		if err := check(collection, &v); err != nil {
			log.Warn().Err(err).Str("collection", collection).Str("id", s.ID).Msg("skipping invalid document")
			continue
		}
		if setID != nil {
			setID(&v, s.ID)
		}
		out = append(out, v)
	}
	return out
}

func decodeOne[T any](ctx context.Context, store docstore.Store, collection, id string) (*T, error) {
	snap, err := store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "%s/%s: %v", collection, id, err)
	}
	if err := check(collection, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
