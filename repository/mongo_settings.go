package repository

import (
	"context"

	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSettings struct {
	collection *mongo.Collection
}

func (r *mongoSettings) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := r.collection.FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&settings); err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

func (r *mongoSettings) Save(ctx context.Context, settings *models.Settings) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": models.SettingsID},
		bson.M{"$set": settings},
		options.Update().SetUpsert(true),
	)
	return err
}
