package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"mera-bestie/metrics"
	"mera-bestie/models"
	"mera-bestie/utils"
)

// maxOrderIDAttempts bounds regeneration of an order id that collides with
// an existing order.
const maxOrderIDAttempts = 5

type OrderService struct {
	users    UserRepository
	products ProductRepository
	orders   OrderRepository
	notifier *Notifier
	ids      utils.IDs
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrderService(users UserRepository, products ProductRepository, orders OrderRepository, notifier *Notifier, ids utils.IDs, logger *zap.Logger) *OrderService {
	return &OrderService{
		users:    users,
		products: products,
		orders:   orders,
		notifier: notifier,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

type PlaceOrderInput struct {
	UserID          string             `json:"userId"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	Address         string             `json:"address"`
	Price           float64            `json:"price"`
	ProductsOrdered []models.OrderItem `json:"productsOrdered"`
}

type reservation struct {
	productID string
	qty       int
}

// PlaceOrder reserves stock for every line item, persists the order and
// queues a confirmation email. Either every item is reserved or none is.
// The email is advisory: its failure is logged and never undoes the order.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if in.UserID == "" {
		return nil, validationError("userId is required")
	}
	if len(in.ProductsOrdered) == 0 {
		return nil, validationError("productsOrdered must contain at least one item")
	}

	// Repeated products are reserved as one line.
	var items []reservation
	index := make(map[string]int)
	for _, item := range in.ProductsOrdered {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, validationError("Every ordered product needs a productId and a positive quantity")
		}
		if i, ok := index[item.ProductID]; ok {
			items[i].qty += item.Quantity
			continue
		}
		index[item.ProductID] = len(items)
		items = append(items, reservation{productID: item.ProductID, qty: item.Quantity})
	}

	user, err := s.users.FindByUserID(ctx, in.UserID)
	if err != nil {
		return nil, internalError("Error placing order", err)
	}
	if user == nil {
		return nil, notFoundError("User not found")
	}

	reserved, err := s.reserve(ctx, items)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.productID)
	}
	order := &models.Order{
		TrackingID:      s.ids.TrackingID(),
		UserID:          user.UserID,
		Name:            user.Name,
		Email:           user.Email,
		Date:            in.Date,
		Time:            in.Time,
		Address:         in.Address,
		Price:           in.Price,
		ProductIDs:      productIDs,
		ProductsOrdered: in.ProductsOrdered,
		Status:          models.OrderStatusPlaced,
		CreatedAt:       s.now(),
	}
	if err := s.persist(ctx, order); err != nil {
		s.release(reserved)
		return nil, internalError("Error placing order", err)
	}

	metrics.OrdersPlaced.Inc()
	s.logger.Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID),
		zap.Int("items", len(items)))

	s.notifier.SendAsync(utils.OrderConfirmation(user.Email, user.Name, order.OrderID, order.TrackingID))
	return order, nil
}

func (s *OrderService) reserve(ctx context.Context, items []reservation) ([]reservation, error) {
	reserved := make([]reservation, 0, len(items))
	for _, it := range items {
		ok, err := s.products.Reserve(ctx, it.productID, it.qty)
		if err != nil {
			s.release(reserved)
			return nil, internalError("Error placing order", err)
		}
		if !ok {
			s.release(reserved)
			metrics.StockRejections.Inc()
			s.logger.Info("order rejected, insufficient stock",
				zap.String("product_id", it.productID),
				zap.Int("quantity", it.qty))
			return nil, stockError("One or more products are out of stock.")
		}
		reserved = append(reserved, it)
	}
	return reserved, nil
}

// release runs on a fresh context: it must complete even when the request
// context has been cancelled.
func (s *OrderService) release(reserved []reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, it := range reserved {
		if err := s.products.Release(ctx, it.productID, it.qty); err != nil {
			s.logger.Error("failed to release reserved stock",
				zap.String("product_id", it.productID),
				zap.Int("quantity", it.qty),
				zap.Error(err))
		}
	}
}

func (s *OrderService) persist(ctx context.Context, order *models.Order) error {
	var err error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		order.OrderID = s.ids.OrderID()
		err = s.orders.Create(ctx, order)
		if !errors.Is(err, models.ErrDuplicate) {
			return err
		}
	}
	return err
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, internalError("Error fetching orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
