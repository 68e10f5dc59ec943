package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mera-bestie/models"
)

type OrderRepository struct {
	m *Mongo
}

func (m *Mongo) Orders() *OrderRepository {
	return &OrderRepository{m: m}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()
	return insert(ctx, r.m.collection(OrdersCollection), order)
}

// FindByUser returns the user's orders, newest first.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.m.collection(OrdersCollection).Find(ctx, bson.M{"userId": userID}, opts)
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
