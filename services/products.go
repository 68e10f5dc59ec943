package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mera-bestie/models"
)

type ProductService struct {
	products ProductRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewProductService(products ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger, now: time.Now}
}

type CreateProductInput struct {
	ProductID    string  `json:"productId" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Price        float64 `json:"price" validate:"gt=0"`
	Img          string  `json:"img" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Rating       float64 `json:"rating" validate:"gte=0,lte=5"`
	InStockValue int     `json:"inStockValue" validate:"gte=0"`
	Visibility   string  `json:"visibility" validate:"omitempty,oneof=on off"`
}

// Search returns the visible products matching the keyword and category.
// The keyword is matched case-insensitively against name and category.
func (s *ProductService) Search(ctx context.Context, keyword, category string) ([]models.ProductView, error) {
	products, err := s.products.Search(ctx, ProductQuery{
		Keyword:  strings.TrimSpace(keyword),
		Category: strings.TrimSpace(category),
	})
	if err != nil {
		return nil, internalError("Error fetching products", err)
	}
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*models.ProductView, error) {
	product, err := s.products.FindByProductID(ctx, productID)
	if err != nil {
		return nil, internalError("Error fetching product", err)
	}
	if product == nil {
		return nil, notFoundError("Product not found")
	}
	view := product.View()
	return &view, nil
}

// Create adds a product owned by sellerID.
func (s *ProductService) Create(ctx context.Context, sellerID string, in CreateProductInput) (*models.ProductView, error) {
	if err := validate.Struct(in); err != nil {
		return nil, &Error{Kind: KindValidation, Message: "Invalid product details", Err: err}
	}

	visibility := models.VisibilityOn
	if in.Visibility != "" {
		visibility = models.Visibility(in.Visibility)
	}
	now := s.now()
	product := &models.Product{
		ProductID:    in.ProductID,
		Name:         in.Name,
		Price:        in.Price,
		Img:          in.Img,
		Category:     in.Category,
		Rating:       in.Rating,
		InStockValue: in.InStockValue,
		Visibility:   visibility,
		SellerID:     sellerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, conflictError("Product already exists")
		}
		return nil, internalError("Error creating product", err)
	}

	s.logger.Info("product created", zap.String("product_id", product.ProductID), zap.String("seller_id", sellerID))
	view := product.View()
	return &view, nil
}
