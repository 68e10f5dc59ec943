package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccountStatus string

const (
	AccountOpen      AccountStatus = "open"
	AccountClosed    AccountStatus = "closed"
	AccountSuspended AccountStatus = "suspended"
	// AccountBlocked is not assignable through the API but exists on
	// imported records and is gated like a suspension.
	AccountBlocked AccountStatus = "blocked"
)

type User struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID        string             `json:"userId" bson:"userId"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	Phone         string             `json:"phone" bson:"phone"`
	AccountStatus AccountStatus      `json:"accountStatus" bson:"accountStatus"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
