package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mera-bestie/models"
)

// maxUpsertAttempts bounds the retry when two first adds for the same user
// race on the unique userId index.
const maxUpsertAttempts = 3

type CartRepository struct {
	m *Mongo
}

func (m *Mongo) Carts() *CartRepository {
	return &CartRepository{m: m}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var cart models.Cart
	found, err := findOne(ctx, r.m.collection(CartsCollection), bson.M{"userId": userID}, &cart)
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

// AddItem first tries to bump an existing line item. When there is none it
// pushes a new one, creating the cart if needed. Both steps are single
// atomic updates.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	coll := r.m.collection(CartsCollection)
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var err error
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		now := time.Now()
		var cart models.Cart

		err = coll.FindOneAndUpdate(ctx,
			bson.M{"userId": userID, "productsInCart.productId": productID},
			bson.M{
				"$inc": bson.M{"productsInCart.$.productQty": qty},
				"$set": bson.M{"updatedAt": now},
			},
			after,
		).Decode(&cart)
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		err = coll.FindOneAndUpdate(ctx,
			bson.M{"userId": userID, "productsInCart.productId": bson.M{"$ne": productID}},
			bson.M{
				"$push":        bson.M{"productsInCart": models.CartItem{ProductID: productID, ProductQty: qty}},
				"$set":         bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true),
		).Decode(&cart)
		if err == nil {
			return &cart, nil
		}
		// A concurrent add won the race: either the cart now exists or the
		// line item does. Retry from the increment.
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	return nil, err
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID string, qty int) (bool, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	res, err := r.m.collection(CartsCollection).UpdateOne(ctx,
		bson.M{"userId": userID, "productsInCart.productId": productID},
		bson.M{"$set": bson.M{
			"productsInCart.$.productQty": qty,
			"updatedAt":                   time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID string) (bool, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	res, err := r.m.collection(CartsCollection).UpdateOne(ctx,
		bson.M{"userId": userID, "productsInCart.productId": productID},
		bson.M{
			"$pull": bson.M{"productsInCart": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
