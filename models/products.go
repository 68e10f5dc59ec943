package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Visibility string

const (
	VisibilityOn  Visibility = "on"
	VisibilityOff Visibility = "off"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type Product struct {
	ID             primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ProductID      string             `json:"productId" bson:"productId"`
	Name           string             `json:"name" bson:"name"`
	Price          float64            `json:"price" bson:"price"`
	Img            string             `json:"img" bson:"img"`
	Category       string             `json:"category" bson:"category"`
	Rating         float64            `json:"rating" bson:"rating"`
	InStockValue   int                `json:"inStockValue" bson:"inStockValue"`
	SoldStockValue int                `json:"soldStockValue" bson:"soldStockValue"`
	Visibility     Visibility         `json:"visibility" bson:"visibility"`
	SellerID       string             `json:"sellerId,omitempty" bson:"sellerId,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TotalStock is the number of units ever stocked: what is left plus what
// has been sold.
func (p Product) TotalStock() int {
	return p.InStockValue + p.SoldStockValue
}

// Sell moves quantity units from in-stock to sold.
func (p *Product) Sell(quantity int) error {
	if quantity <= 0 || p.InStockValue < quantity {
		return ErrInsufficientStock
	}
	p.InStockValue -= quantity
	p.SoldStockValue += quantity
	return nil
}

// Unsell reverts a previous Sell of the same quantity.
func (p *Product) Unsell(quantity int) {
	p.InStockValue += quantity
	p.SoldStockValue -= quantity
}

// ProductView is the JSON shape returned by the catalog endpoints.
type ProductView struct {
	Product
	TotalStockValue int `json:"totalStockValue"`
}

func (p Product) View() ProductView {
	return ProductView{Product: p, TotalStockValue: p.TotalStock()}
}
