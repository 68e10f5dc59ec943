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

type ComplaintRepository struct {
	m *Mongo
}

func (m *Mongo) Complaints() *ComplaintRepository {
	return &ComplaintRepository{m: m}
}

func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()
	return insert(ctx, r.m.collection(ComplaintsCollection), complaint)
}

func (r *ComplaintRepository) List(ctx context.Context, status string) ([]models.Complaint, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.m.collection(ComplaintsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, complaintNumber, status string) (*models.Complaint, error) {
	ctx, cancel := r.m.timeout(ctx)
	defer cancel()

	var complaint models.Complaint
	err := r.m.collection(ComplaintsCollection).FindOneAndUpdate(ctx,
		bson.M{"complaintNumber": complaintNumber},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&complaint)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}
