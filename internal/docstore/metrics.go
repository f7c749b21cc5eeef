package docstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps a Store and counts every operation in docstore_operations_total.
type Instrumented struct {
	Store
	ops *prometheus.CounterVec
}

// Instrument registers the operation counter on reg and returns the wrapped store.
func Instrument(s Store, reg prometheus.Registerer) (*Instrumented, error) {
	ops := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docstore_operations_total",
			Help: "Total number of document store operations.",
		},
		[]string{"collection", "op", "result"},
	)
	if err := reg.Register(ops); err != nil {
		return nil, err
	}
	return &Instrumented{Store: s, ops: ops}, nil
}

func (i *Instrumented) observe(collection, op string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	i.ops.WithLabelValues(collection, op, result).Inc()
}

func (i *Instrumented) Add(ctx context.Context, collection string, doc any) (string, error) {
	id, err := i.Store.Add(ctx, collection, doc)
	i.observe(collection, "add", err)
	return id, err
}

func (i *Instrumented) Set(ctx context.Context, collection, id string, doc any) error {
	err := i.Store.Set(ctx, collection, id, doc)
	i.observe(collection, "set", err)
	return err
}

func (i *Instrumented) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	s, err := i.Store.Get(ctx, collection, id)
	i.observe(collection, "get", err)
	return s, err
}

func (i *Instrumented) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	s, err := i.Store.Query(ctx, collection, q)
	i.observe(collection, "query", err)
	return s, err
}

func (i *Instrumented) List(ctx context.Context, collection string) ([]Snapshot, error) {
	s, err := i.Store.List(ctx, collection)
	i.observe(collection, "list", err)
	return s, err
}

func (i *Instrumented) Delete(ctx context.Context, collection, id string) error {
	err := i.Store.Delete(ctx, collection, id)
	i.observe(collection, "delete", err)
	return err
}
