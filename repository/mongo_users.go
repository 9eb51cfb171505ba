package repository

import (
	"context"

	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUsers struct {
	collection *mongo.Collection
	counters   *counters
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *mongoUsers) Upsert(ctx context.Context, user *models.User) error {
	existing, err := r.FindByEmail(ctx, user.Email)
	switch err {
	case nil:
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
		_, err = r.collection.ReplaceOne(ctx, bson.M{"email": user.Email}, user)
		return translate(err)
	case ErrNotFound:
		id, err := r.counters.next(ctx, "users")
		if err != nil {
			return err
		}
		user.ID = id
		_, err = r.collection.InsertOne(ctx, user)
		return translate(err)
	default:
		return err
	}
}

func (r *mongoUsers) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
