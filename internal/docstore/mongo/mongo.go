// Package mongo implements docstore.Store on MongoDB. Every collection name maps to a MongoDB
// collection and the document id is stored as _id.
package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"tearoomcms/internal/docstore"
)

// Store is a MongoDB backed docstore.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ docstore.Store = (*Store)(nil)

// New connects to uri, verifies connectivity and uses database for all collections.
func New(ctx context.Context, uri, database string) (*Store, error) {
	opts := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongodb")
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Add(ctx context.Context, collection string, doc any) (string, error) {
	id := uuid.NewString()

	body, err := withID(id, doc)
	if err != nil {
		return "", err
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, body); err != nil {
		return "", errors.Wrapf(err, "insert into %s", collection)
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, doc any) error {
	body, err := withID(id, doc)
	if err != nil {
		return err
	}

	_, err = s.db.Collection(collection).ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, body, options.Replace().SetUpsert(true))
	return errors.Wrapf(err, "replace %s/%s", collection, id)
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Snapshot, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return docstore.Snapshot{}, docstore.ErrNotFound
		}
		return docstore.Snapshot{}, errors.Wrapf(err, "find %s/%s", collection, id)
	}
	return rawSnapshot(id, raw), nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	return s.Query(ctx, collection, docstore.Query{})
}

func (s *Store) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Snapshot, error) {
	opts := options.Find()
	if sort := sortFor(q); sort != nil {
		opts.SetSort(sort)
	}

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", collection)
	}
	defer cur.Close(ctx)

	out := make([]docstore.Snapshot, 0)
	for cur.Next(ctx) {
		raw := make(bson.Raw, len(cur.Current))
		copy(raw, cur.Current)

		id, ok := raw.Lookup("_id").StringValueOK()
		if !ok {
			continue
		}
		out = append(out, rawSnapshot(id, raw))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s", collection)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return errors.Wrapf(err, "delete %s/%s", collection, id)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// withID encodes doc and puts the id in front as _id.
func withID(id string, doc any) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}

	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(err, "encode document")
	}

	out := bson.D{{Key: "_id", Value: id}}
	for _, f := range fields {
		if f.Key != "_id" {
			out = append(out, f)
		}
	}
	return out, nil
}

func sortFor(q docstore.Query) bson.D {
	if q.OrderBy == "" {
		return nil
	}
	dir := 1
	if q.Desc {
		dir = -1
	}
	return bson.D{{Key: q.OrderBy, Value: dir}}
}

func rawSnapshot(id string, raw bson.Raw) docstore.Snapshot {
	return docstore.NewSnapshot(id, func(v any) error {
		return errors.Wrapf(bson.Unmarshal(raw, v), "decode document %s", id)
	})
}
