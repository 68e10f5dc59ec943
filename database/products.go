package db

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mera-bestie/models"
	"mera-bestie/services"
)

type ProductRepository struct {
	m *Mongo
}

func (m *Mongo) Products() *ProductRepository {
	return &ProductRepository{m: m}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()
	return insert(ctx, r.m.collection(ProductsCollection), product)
}

func (r *ProductRepository) FindByProductID(ctx context.Context, productID string) (*models.Product, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var product models.Product
	found, err := findOne(ctx, r.m.collection(ProductsCollection), bson.M{"productId": productID}, &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindByProductIDs(ctx context.Context, productIDs []string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"productId": bson.M{"$in": productIDs}})
}

// Search matches the keyword case-insensitively against name or category.
func (r *ProductRepository) Search(ctx context.Context, q services.ProductQuery) ([]models.Product, error) {
	filter := bson.M{"visibility": models.VisibilityOn}
	if q.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Keyword), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"category": pattern},
		}
	}
	if q.Category != "" {
		filter["category"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q.Category) + "$", Options: "i"}
	}
	return r.find(ctx, filter)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	cursor, err := r.m.collection(ProductsCollection).Find(ctx, filter)
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

// Reserve is a single conditional update, so concurrent orders can never
// drive inStockValue below zero.
func (r *ProductRepository) Reserve(ctx context.Context, productID string, qty int) (bool, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	res, err := r.m.collection(ProductsCollection).UpdateOne(ctx,
		bson.M{"productId": productID, "inStockValue": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"inStockValue": -qty, "soldStockValue": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *ProductRepository) Release(ctx context.Context, productID string, qty int) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	_, err := r.m.collection(ProductsCollection).UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{
			"$inc": bson.M{"inStockValue": qty, "soldStockValue": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
