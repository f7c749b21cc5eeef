package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Memory is a process-local Store used in development and tests. Documents are kept as JSON.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	newID       func() string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string][]byte),
		newID:       uuid.NewString,
	}
}

func (m *Memory) Add(ctx context.Context, collection string, doc any) (string, error) {
	id := m.newID()
	if err := m.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "encode %s/%s", collection, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string][]byte)
		m.collections[collection] = coll
	}
	coll[id] = b

	return nil
}

func (m *Memory) Get(_ context.Context, collection, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.collections[collection][id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return jsonSnapshot(id, b), nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]Snapshot, error) {
	return m.Query(ctx, collection, Query{})
}

func (m *Memory) Query(_ context.Context, collection string, q Query) ([]Snapshot, error) {
	m.mu.RLock()
	coll := m.collections[collection]
	type entry struct {
		id   string
		body []byte
		key  any
	}
	entries := make([]entry, 0, len(coll))
	for id, b := range coll {
		e := entry{id: id, body: b}
		if q.OrderBy != "" {
			var fields map[string]any
			if err := json.Unmarshal(b, &fields); err == nil {
				e.key = fields[q.OrderBy]
			}
		}
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(entries, func(i, j int) bool {
			if q.Desc {
				return less(entries[j].key, entries[i].key)
			}
			return less(entries[i].key, entries[j].key)
		})
	}

	out := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonSnapshot(e.id, e.body))
	}
	return out, nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error { return nil }

// less orders decoded JSON values: missing values first, numbers numerically, everything else as text.
// RFC3339 timestamps in UTC sort correctly as text.
func less(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func jsonSnapshot(id string, b []byte) Snapshot {
	return NewSnapshot(id, func(v any) error {
		return errors.Wrapf(json.Unmarshal(b, v), "decode document %s", id)
	})
}
