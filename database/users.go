package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mera-bestie/models"
)

type UserRepository struct {
	m *Mongo
}

func (m *Mongo) Users() *UserRepository {
	return &UserRepository{m: m}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()
	return insert(ctx, r.m.collection(UsersCollection), user)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var user models.User
	found, err := findOne(ctx, r.m.collection(UsersCollection), filter, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// Emails projects the email field of every user.
func (r *UserRepository) Emails(ctx context.Context) ([]string, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"email": 1, "_id": 0})
	cursor, err := r.m.collection(UsersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, row.Email)
	}
	return emails, nil
}
