package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var now = func() time.Time { return time.Now().UTC() }

// Connect opens a MongoDB client and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// NewMongoStore returns repositories backed by db.
func NewMongoStore(db *mongo.Database) *Store {
	counters := &counters{collection: db.Collection("counters")}
	return &Store{
		Products: &mongoProducts{collection: db.Collection("products"), counters: counters},
		Orders:   &mongoOrders{collection: db.Collection("orders"), counters: counters},
		Settings: &mongoSettings{collection: db.Collection("settings")},
		Users:    &mongoUsers{collection: db.Collection("users"), counters: counters},
	}
}

// EnsureIndexes creates the unique indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range indexModels() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func indexModels() map[string][]mongo.IndexModel {
	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}, Options: options.Index().SetUnique(true)}
	}
	// orders stored before tokens existed have no trackingToken field
	token := unique("trackingToken")
	token.Options.SetPartialFilterExpression(bson.M{"trackingToken": bson.M{"$type": "string"}})

	return map[string][]mongo.IndexModel{
		"products": {unique("id")},
		"orders": {
			unique("id"),
			unique("orderId"),
			token,
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		"users": {unique("email")},
	}
}

// counters hands out sequential integer ids per collection.
type counters struct {
	collection *mongo.Collection
}

func (c *counters) next(ctx context.Context, name string) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := c.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
