package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line item of a cart.
type CartItem struct {
	ProductID  string `json:"productId" bson:"productId"`
	ProductQty int    `json:"productQty" bson:"productQty"`
}

// Cart holds the line items of a single user. There is at most one cart per
// user; carts.userId is uniquely indexed.
type Cart struct {
	ID             primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	ProductsInCart []CartItem         `json:"productsInCart" bson:"productsInCart"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (c *Cart) find(productID string) int {
	for i, item := range c.ProductsInCart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into the line item for productID, appending a new line item
// when the product is not in the cart yet.
func (c *Cart) Add(productID string, qty int) {
	if i := c.find(productID); i >= 0 {
		c.ProductsInCart[i].ProductQty += qty
		return
	}
	c.ProductsInCart = append(c.ProductsInCart, CartItem{ProductID: productID, ProductQty: qty})
}

// SetQuantity replaces the quantity of an existing line item. It reports
// false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}
	c.ProductsInCart[i].ProductQty = qty
	return true
}

// Remove drops the line item for productID. It reports false when the
// product is not in the cart.
func (c *Cart) Remove(productID string) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}
	c.ProductsInCart = append(c.ProductsInCart[:i], c.ProductsInCart[i+1:]...)
	return true
}

// Total sums price times quantity over the line items whose product is
// present in prices. Products that no longer exist are skipped.
func (c *Cart) Total(prices map[string]float64) float64 {
	var total float64
	for _, item := range c.ProductsInCart {
		if price, ok := prices[item.ProductID]; ok {
			total += price * float64(item.ProductQty)
		}
	}
	return total
}
