package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mera-bestie/database/memory"
	"mera-bestie/models"
	"mera-bestie/services"
	"mera-bestie/utils"
)

// recordingSender keeps every message it is asked to send. Sends to
// addresses in failFor return an error.
type recordingSender struct {
	mu      sync.Mutex
	sent    []utils.Message
	failFor map[string]bool
}

func (s *recordingSender) Send(_ context.Context, msg utils.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[msg.To] {
		return errors.New("smtp: connection refused")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []utils.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]utils.Message(nil), s.sent...)
}

// scriptedIDs hands out the queued ids in order, repeating the last one
// once the queue is down to a single entry. Empty queues fall back to
// random ids.
type scriptedIDs struct {
	utils.RandomIDs
	mu               sync.Mutex
	sellerIDs        []string
	orderIDs         []string
	complaintNumbers []string
}

func (s *scriptedIDs) next(queue *[]string, fallback func() string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(*queue) == 0 {
		return fallback()
	}
	id := (*queue)[0]
	if len(*queue) > 1 {
		*queue = (*queue)[1:]
	}
	return id
}

func (s *scriptedIDs) SellerID() string {
	return s.next(&s.sellerIDs, s.RandomIDs.SellerID)
}

func (s *scriptedIDs) OrderID() string {
	return s.next(&s.orderIDs, s.RandomIDs.OrderID)
}

func (s *scriptedIDs) ComplaintNumber() string {
	return s.next(&s.complaintNumbers, s.RandomIDs.ComplaintNumber)
}

type fixture struct {
	store    *memory.Store
	sender   *recordingSender
	notifier *services.Notifier
	ids      *scriptedIDs
	logger   *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	sender := &recordingSender{failFor: map[string]bool{}}
	return &fixture{
		store:    memory.New(),
		sender:   sender,
		notifier: services.NewNotifier(sender, time.Second, 4, logger),
		ids:      &scriptedIDs{},
		logger:   logger,
	}
}

func (f *fixture) accounts() *services.AccountService {
	return services.NewAccountService(f.store.Users(), f.store.Sellers(), f.ids, f.logger)
}

func (f *fixture) carts() *services.CartService {
	return services.NewCartService(f.store.Carts(), f.store.Products(), f.logger)
}

func (f *fixture) orders() *services.OrderService {
	return services.NewOrderService(f.store.Users(), f.store.Products(), f.store.Orders(), f.notifier, f.ids, f.logger)
}

func (f *fixture) complaints() *services.ComplaintService {
	return services.NewComplaintService(f.store.Complaints(), f.notifier, f.ids, f.logger)
}

func (f *fixture) coupons() *services.CouponService {
	return services.NewCouponService(f.store.Coupons(), f.store.Users(), f.notifier, 30*24*time.Hour, f.logger)
}

func (f *fixture) products() *services.ProductService {
	return services.NewProductService(f.store.Products(), f.logger)
}

func (f *fixture) addUser(t *testing.T, userID, email string, status models.AccountStatus) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, f.store.Users().Create(context.Background(), &models.User{
		UserID:        userID,
		Name:          "User " + userID,
		Email:         email,
		Password:      hash,
		Phone:         "9876543210",
		AccountStatus: status,
	}))
}

func (f *fixture) addProduct(t *testing.T, productID string, price float64, inStock int) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(context.Background(), &models.Product{
		ProductID:    productID,
		Name:         "Product " + productID,
		Price:        price,
		Category:     "gifts",
		InStockValue: inStock,
		Visibility:   models.VisibilityOn,
	}))
}

func requireKind(t *testing.T, err error, kind services.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, services.KindOf(err), "error: %v", err)
}
