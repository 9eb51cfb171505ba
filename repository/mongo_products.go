package repository

import (
	"context"

	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProducts struct {
	collection *mongo.Collection
	counters   *counters
}

func (r *mongoProducts) FindAll(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProducts) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *mongoProducts) Create(ctx context.Context, product *models.Product) error {
	id, err := r.counters.next(ctx, "products")
	if err != nil {
		return err
	}
	product.ID = id
	_, err = r.collection.InsertOne(ctx, product)
	return translate(err)
}

func (r *mongoProducts) CreateMany(ctx context.Context, products []models.Product) error {
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		id, err := r.counters.next(ctx, "products")
		if err != nil {
			return err
		}
		products[i].ID = id
		docs = append(docs, products[i])
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return translate(err)
}

func (r *mongoProducts) Update(ctx context.Context, product *models.Product) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProducts) Delete(ctx context.Context, id int) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProducts) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
