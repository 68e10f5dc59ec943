package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultCouponUsageLimit = 1

type Coupon struct {
	ID                 primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Code               string             `json:"code" bson:"code"`
	DiscountPercentage int                `json:"discountPercentage" bson:"discountPercentage"`
	ExpirationDate     time.Time          `json:"expirationDate" bson:"expirationDate"`
	UsageLimit         int                `json:"usageLimit" bson:"usageLimit"`
	IsActive           bool               `json:"isActive" bson:"isActive"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Redeemable reports whether the coupon can be applied at now: active, not
// past its expiration date and with usage left.
func (c Coupon) Redeemable(now time.Time) bool {
	return c.IsActive && !c.ExpirationDate.Before(now) && c.UsageLimit > 0
}
