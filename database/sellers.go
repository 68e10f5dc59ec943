package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"mera-bestie/models"
)

type SellerRepository struct {
	m *Mongo
}

func (m *Mongo) Sellers() *SellerRepository {
	return &SellerRepository{m: m}
}

func (r *SellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()
	return insert(ctx, r.m.collection(SellersCollection), seller)
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SellerRepository) FindBySellerID(ctx context.Context, sellerID string) (*models.Seller, error) {
	return r.findOne(ctx, bson.M{"sellerId": sellerID})
}

func (r *SellerRepository) FindByCredentials(ctx context.Context, sellerID, emailOrPhone string) (*models.Seller, error) {
	return r.findOne(ctx, bson.M{
		"sellerId": sellerID,
		"$or": bson.A{
			bson.M{"email": emailOrPhone},
			bson.M{"phoneNumber": emailOrPhone},
		},
	})
}

func (r *SellerRepository) findOne(ctx context.Context, filter bson.M) (*models.Seller, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var seller models.Seller
	found, err := findOne(ctx, r.m.collection(SellersCollection), filter, &seller)
	if err != nil || !found {
		return nil, err
	}
	return &seller, nil
}

func (r *SellerRepository) SetLoginState(ctx context.Context, sellerID string, state models.LoginState) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	_, err := r.m.collection(SellersCollection).UpdateOne(ctx,
		bson.M{"sellerId": sellerID},
		bson.M{"$set": bson.M{"loggedIn": state, "updatedAt": time.Now()}},
	)
	return err
}
