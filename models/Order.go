package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusPlaced = "placed"

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID string `json:"productId" bson:"productId" binding:"required"`
	Quantity  int    `json:"quantity" bson:"quantity" binding:"required,gt=0"`
}

// Order is a snapshot taken when the order is placed. Name and Email are
// copied from the user so the order survives later profile changes.
type Order struct {
	ID              primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	OrderID         string             `json:"orderId" bson:"orderId"`
	TrackingID      string             `json:"trackingId" bson:"trackingId"`
	UserID          string             `json:"userId" bson:"userId"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Date            string             `json:"date" bson:"date"`
	Time            string             `json:"time" bson:"time"`
	Address         string             `json:"address" bson:"address"`
	Price           float64            `json:"price" bson:"price"`
	ProductIDs      []string           `json:"productIds" bson:"productIds"`
	ProductsOrdered []OrderItem        `json:"productsOrdered" bson:"productsOrdered"`
	Status          string             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}
