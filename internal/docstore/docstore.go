// Package docstore is a thin pass-through to a schemaless document database organised in named
// collections. It holds no validation or business logic; typed access lives in package repository.
package docstore

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Query selects every document of a collection, optionally ordered by a single top-level field.
type Query struct {
	OrderBy string
	Desc    bool
}

// Snapshot is a document read from the store. The body is decoded lazily into a typed record with DataTo.
type Snapshot struct {
	ID     string
	decode func(v any) error
}

// NewSnapshot builds a snapshot whose body is decoded by decode.
func NewSnapshot(id string, decode func(v any) error) Snapshot {
	return Snapshot{ID: id, decode: decode}
}

// DataTo decodes the document body into v.
func (s Snapshot) DataTo(v any) error {
	if s.decode == nil {
		return errors.Errorf("document %s has no body", s.ID)
	}
	return s.decode(v)
}

// Store is implemented by every document database backend.
// Writes are last-write-wins per document; there are no transactions.
type Store interface {
	// Add stores doc under a generated id and returns the id.
	Add(ctx context.Context, collection string, doc any) (string, error)
	// Set stores doc under id, replacing any existing document.
	Set(ctx context.Context, collection, id string, doc any) error
	// Get returns the document with the given id or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Snapshot, error)
	// Query returns every document of the collection in the requested order.
	Query(ctx context.Context, collection string, q Query) ([]Snapshot, error)
	// List returns every document of the collection in no particular order.
	List(ctx context.Context, collection string) ([]Snapshot, error)
	// Delete removes the document with the given id. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Ping checks connectivity to the backend.
	Ping(ctx context.Context) error
	// Close releases the backend connection.
	Close(ctx context.Context) error
}
