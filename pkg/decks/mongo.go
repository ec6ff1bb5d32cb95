package decks

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection decks are stored in.
const Collection = "decks"

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI      string // e.g. "mongodb://localhost:27017"
	Database string // default "deckeditor"
}

// MongoStore keeps decks in MongoDB, one document per deck keyed by deck id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures
// the owner/recency index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "deckeditor"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{client: client, coll: client.Database(cfg.Database).Collection(Collection)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("owner_recent"),
	})
	if err != nil {
		return fmt.Errorf("create deck index: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, ownerID string) ([]Deck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	out := []Deck{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode decks: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, ownerID, id string) (*Deck, error) {
	var d Deck
	err := s.coll.FindOne(ctx, ownerFilter(ownerID, id)).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get deck %s: %w", id, err)
	}
	return &d, nil
}

func (s *MongoStore) Create(ctx context.Context, d *Deck) error {
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("create deck: %w", err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, d *Deck) error {
	res, err := s.coll.ReplaceOne(ctx, ownerFilter(d.OwnerID, d.ID), d)
	if err != nil {
		return fmt.Errorf("update deck %s: %w", d.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.coll.DeleteOne(ctx, ownerFilter(ownerID, id))
	if err != nil {
		return fmt.Errorf("delete deck %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ownerFilter matches one deck of one owner, so a foreign id behaves like a
// missing one.
func ownerFilter(ownerID, id string) bson.M {
	return bson.M{"_id": id, "ownerId": ownerID}
}

var _ Store = (*MongoStore)(nil)
