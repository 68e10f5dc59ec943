package services

import (
	"context"

	"go.uber.org/zap"

	"mera-bestie/models"
)

type CartService struct {
	carts    CartRepository
	products ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts CartRepository, products ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// CartView is a cart together with its current value.
type CartView struct {
	*models.Cart
	Total float64 `json:"total"`
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, validationError("Quantity must be a positive number.")
	}
	if userID == "" || productID == "" {
		return nil, validationError("userId and productId are required.")
	}

	cart, err := s.carts.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, internalError("Error adding product to cart", err)
	}
	return cart, nil
}

// GetCart returns the user's cart priced against the current catalog.
// A cart without line items is reported as missing.
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, internalError("Error fetching cart", err)
	}
	if cart == nil || len(cart.ProductsInCart) == 0 {
		return nil, notFoundError("Cart is empty")
	}

	ids := make([]string, 0, len(cart.ProductsInCart))
	for _, item := range cart.ProductsInCart {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByProductIDs(ctx, ids)
	if err != nil {
		return nil, internalError("Error fetching cart", err)
	}
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ProductID] = p.Price
	}

	return &CartView{Cart: cart, Total: cart.Total(prices)}, nil
}

// UpdateQuantity replaces the quantity of a line item.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" || productID == "" || quantity <= 0 {
		return validationError("Valid userId, productId, and productQty are required.")
	}
	if err := s.requireCart(ctx, userID); err != nil {
		return err
	}

	ok, err := s.carts.SetQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return internalError("An error occurred while updating the quantity.", err)
	}
	if !ok {
		return notFoundError("Product not found in the cart.")
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" || productID == "" {
		return validationError("userId and productId are required.")
	}
	if err := s.requireCart(ctx, userID); err != nil {
		return err
	}

	ok, err := s.carts.RemoveItem(ctx, userID, productID)
	if err != nil {
		return internalError("An error occurred while deleting the item.", err)
	}
	if !ok {
		return notFoundError("Product not found in the cart.")
	}
	return nil
}

func (s *CartService) requireCart(ctx context.Context, userID string) error {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return internalError("Error fetching cart", err)
	}
	if cart == nil {
		return notFoundError("Cart not found.")
	}
	return nil
}
