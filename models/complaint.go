package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ComplaintPending    = "Pending"
	ComplaintInProgress = "In Progress"
	ComplaintResolved   = "Resolved"
)

type Complaint struct {
	ID              primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ComplaintNumber string             `json:"complaintNumber" bson:"complaintNumber"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Message         string             `json:"message" bson:"message"`
	UserType        string             `json:"userType" bson:"userType"`
	Status          string             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
