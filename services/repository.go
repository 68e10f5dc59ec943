package services

import (
	"context"
	"time"

	"mera-bestie/models"
)

// Finders return (nil, nil) when no document matches. Create methods return
// models.ErrDuplicate when a unique index rejects the write.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	// Emails lists the address of every registered user.
	Emails(ctx context.Context) ([]string, error)
}

type SellerRepository interface {
	Create(ctx context.Context, seller *models.Seller) error
	FindByEmail(ctx context.Context, email string) (*models.Seller, error)
	FindBySellerID(ctx context.Context, sellerID string) (*models.Seller, error)
	// FindByCredentials matches sellerID together with either the email or
	// the phone number.
	FindByCredentials(ctx context.Context, sellerID, emailOrPhone string) (*models.Seller, error)
	SetLoginState(ctx context.Context, sellerID string, state models.LoginState) error
}

type ProductQuery struct {
	Keyword  string
	Category string
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByProductID(ctx context.Context, productID string) (*models.Product, error)
	FindByProductIDs(ctx context.Context, productIDs []string) ([]models.Product, error)
	// Search returns visible products only.
	Search(ctx context.Context, q ProductQuery) ([]models.Product, error)
	// Reserve sells qty units if at least qty are in stock. It reports false,
	// leaving the product untouched, when stock is short or the product does
	// not exist.
	Reserve(ctx context.Context, productID string, qty int) (bool, error)
	// Release undoes a successful Reserve.
	Release(ctx context.Context, productID string, qty int) error
}

type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	// AddItem merges qty into the user's cart, creating the cart on first
	// use, and returns the cart after the write.
	AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error)
	// SetQuantity and RemoveItem report false when the line item is absent.
	SetQuantity(ctx context.Context, userID, productID string, qty int) (bool, error)
	RemoveItem(ctx context.Context, userID, productID string) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	// List returns every complaint, or only those in status when it is not
	// empty.
	List(ctx context.Context, status string) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, complaintNumber, status string) (*models.Complaint, error)
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	List(ctx context.Context) ([]models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	// DeleteMatching deletes the coupon only if both code and percentage
	// match; it reports whether a coupon was deleted.
	DeleteMatching(ctx context.Context, code string, discountPercentage int) (bool, error)
	// Redeem decrements the usage limit of a coupon that is redeemable at
	// now and returns it, or returns nil when no such coupon exists.
	Redeem(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
