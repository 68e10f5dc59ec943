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

type CouponRepository struct {
	m *Mongo
}

func (m *Mongo) Coupons() *CouponRepository {
	return &CouponRepository{m: m}
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()
	return insert(ctx, r.m.collection(CouponsCollection), coupon)
}

func (r *CouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	cursor, err := r.m.collection(CouponsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var coupon models.Coupon
	found, err := findOne(ctx, r.m.collection(CouponsCollection), bson.M{"code": code}, &coupon)
	if err != nil || !found {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) DeleteMatching(ctx context.Context, code string, discountPercentage int) (bool, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	res, err := r.m.collection(CouponsCollection).DeleteOne(ctx, bson.M{
		"code":               code,
		"discountPercentage": discountPercentage,
	})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// Redeem applies the validity predicate and the decrement in one update.
func (r *CouponRepository) Redeem(ctx context.Context, code string, now time.Time) (*models.Coupon, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var coupon models.Coupon
	err := r.m.collection(CouponsCollection).FindOneAndUpdate(ctx,
		bson.M{
			"code":           code,
			"isActive":       true,
			"expirationDate": bson.M{"$gte": now},
			"usageLimit":     bson.M{"$gt": 0},
		},
		bson.M{
			"$inc": bson.M{"usageLimit": -1},
			"$set": bson.M{"updatedAt": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *CouponRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	res, err := r.m.collection(CouponsCollection).UpdateMany(ctx,
		bson.M{"isActive": true, "expirationDate": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
