package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sgerrors "github.com/matzehuels/stepgraph/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase = "stepgraph"
	mongoCollection      = "snapshots"
)

// MongoStore keeps snapshots as documents keyed by ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and pings the primary.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, sgerrors.New(sgerrors.ErrCodeInvalidInput, "mongo store needs a connection URI")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, sgerrors.Wrap(sgerrors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, sgerrors.Wrap(sgerrors.ErrCodeNetwork, err, "ping mongo")
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(mongoCollection)}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sgerrors.NoData()
	}
	if err != nil {
		var ce mongo.CommandError
		if errors.As(err, &ce) {
			return nil, fmt.Errorf("find %s: %w", id, err)
		}
		return nil, sgerrors.InvalidData(err)
	}
	if err := snap.Check(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *MongoStore) Set(ctx context.Context, snap *Snapshot) error {
	if _, err := encode(snap); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snap.ID}, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", snap.ID, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) List(ctx context.Context) ([]*Snapshot, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer cur.Close(ctx)

	all := []*Snapshot{}
	for cur.Next(ctx) {
		var snap Snapshot
		if err := cur.Decode(&snap); err != nil || snap.Check() != nil {
			continue
		}
		all = append(all, &snap)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	newestFirst(all)
	return all, nil
}

func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
