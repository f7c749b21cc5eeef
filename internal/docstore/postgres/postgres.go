// Package postgres implements docstore.Store on a single PostgreSQL JSONB table.
// The schema is created by migration.EnsureMigrated.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tearoomcms/internal/docstore"
)

// Store is a PostgreSQL implementation of docstore.Store.
// It uses database/sql with parameterized queries and contains no business logic.
type Store struct {
	db *sql.DB
}

// New creates a new Store on an open connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Add(ctx context.Context, collection string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "encode document")
	}

	const q = `
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES ($1, $2, $3, now())
	`
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, q, collection, id, data); err != nil {
		return "", errors.Wrapf(err, "insert into %s", collection)
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode document")
	}

	const q = `
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	_, err = s.db.ExecContext(ctx, q, collection, id, data)
	return errors.Wrapf(err, "upsert %s/%s", collection, id)
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	const q = `SELECT data FROM documents WHERE collection = $1 AND id = $2`

	var data []byte
	if err := s.db.QueryRowContext(ctx, q, collection, id).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.Snapshot{}, docstore.ErrNotFound
		}
		return docstore.Snapshot{}, errors.Wrapf(err, "select %s/%s", collection, id)
	}
	return jsonSnapshot(id, data), nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	const q = `SELECT id, data FROM documents WHERE collection = $1`
	return s.query(ctx, collection, q, collection)
}

// Query orders by the JSONB value of the field; numbers compare numerically, strings lexically.
func (s *Store) Query(ctx context.Context, collection string, query docstore.Query) ([]docstore.Snapshot, error) {
	if query.OrderBy == "" {
		return s.List(ctx, collection)
	}

	const (
		qAsc  = `SELECT id, data FROM documents WHERE collection = $1 ORDER BY data -> $2 ASC, id ASC`
		qDesc = `SELECT id, data FROM documents WHERE collection = $1 ORDER BY data -> $2 DESC, id DESC`
	)
	q := qAsc
	if query.Desc {
		q = qDesc
	}
	return s.query(ctx, collection, q, collection, query.OrderBy)
}

func (s *Store) query(ctx context.Context, collection, q string, args ...any) ([]docstore.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", collection)
	}
	defer rows.Close()

	out := make([]docstore.Snapshot, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrapf(err, "scan %s", collection)
		}
		out = append(out, jsonSnapshot(id, data))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s", collection)
	}
	return out, nil
}

// Delete removes a document. It does not return an error if the row does not exist.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	_, err := s.db.ExecContext(ctx, q, collection, id)
	return errors.Wrapf(err, "delete %s/%s", collection, id)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func jsonSnapshot(id string, data []byte) docstore.Snapshot {
	return docstore.NewSnapshot(id, func(v any) error {
		return errors.Wrapf(json.Unmarshal(data, v), "decode document %s", id)
	})
}
