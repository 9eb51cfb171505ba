package repository

import (
	"context"

	"storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	collection *mongo.Collection
	counters   *counters
}

func (r *mongoOrders) Create(ctx context.Context, order *models.Order) error {
	id, err := r.counters.next(ctx, "orders")
	if err != nil {
		return err
	}
	order.ID = id
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		order.ID = 0
		return translate(err)
	}
	return nil
}

func (r *mongoOrders) FindAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrders) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	if err := r.collection.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *mongoOrders) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"orderId": orderID})
}

func (r *mongoOrders) FindByTrackingToken(ctx context.Context, token string) (*models.Order, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"trackingToken": token})
}

func (r *mongoOrders) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"orderId": orderID}, update, opts).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *mongoOrders) Delete(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}
