// Package memory is an in-process implementation of the repositories, used
// when store.driver is "memory" and throughout the tests. Documents are
// copied on the way in and out so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mera-bestie/models"
	"mera-bestie/services"
)

// Store holds every collection behind a single lock.
type Store struct {
	mu         sync.Mutex
	users      []models.User
	sellers    []models.Seller
	products   []models.Product
	carts      map[string]*models.Cart
	orders     []models.Order
	complaints []models.Complaint
	coupons    []models.Coupon
}

func New() *Store {
	return &Store{carts: make(map[string]*models.Cart)}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s} }
func (s *Store) Sellers() *SellerRepository { return &SellerRepository{s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{s} }
func (s *Store) Carts() *CartRepository { return &CartRepository{s} }
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s} }
func (s *Store) Complaints() *ComplaintRepository { return &ComplaintRepository{s} }
func (s *Store) Coupons() *CouponRepository { return &CouponRepository{s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email || u.UserID == user.UserID {
			return models.ErrDuplicate
		}
	}
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email }), nil
}

func (r *UserRepository) FindByUserID(_ context.Context, userID string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.UserID == userID }), nil
}

func (r *UserRepository) find(match func(models.User) bool) *models.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *UserRepository) Emails(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	emails := make([]string, 0, len(r.s.users))
	for _, u := range r.s.users {
		emails = append(emails, u.Email)
	}
	return emails, nil
}

type SellerRepository struct{ s *Store }

func (r *SellerRepository) Create(_ context.Context, seller *models.Seller) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sl := range r.s.sellers {
		if sl.Email == seller.Email || sl.SellerID == seller.SellerID {
			return models.ErrDuplicate
		}
	}
	r.s.sellers = append(r.s.sellers, *seller)
	return nil
}

func (r *SellerRepository) FindByEmail(_ context.Context, email string) (*models.Seller, error) {
	return r.find(func(sl models.Seller) bool { return sl.Email == email }), nil
}

func (r *SellerRepository) FindBySellerID(_ context.Context, sellerID string) (*models.Seller, error) {
	return r.find(func(sl models.Seller) bool { return sl.SellerID == sellerID }), nil
}

func (r *SellerRepository) FindByCredentials(_ context.Context, sellerID, emailOrPhone string) (*models.Seller, error) {
	return r.find(func(sl models.Seller) bool {
		return sl.SellerID == sellerID && (sl.Email == emailOrPhone || sl.PhoneNumber == emailOrPhone)
	}), nil
}

func (r *SellerRepository) find(match func(models.Seller) bool) *models.Seller {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sl := range r.s.sellers {
		if match(sl) {
			return &sl
		}
	}
	return nil
}

func (r *SellerRepository) SetLoginState(_ context.Context, sellerID string, state models.LoginState) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.sellers {
		if r.s.sellers[i].SellerID == sellerID {
			r.s.sellers[i].LoggedIn = state
			r.s.sellers[i].UpdatedAt = time.Now()
		}
	}
	return nil
}

// Verify marks a seller's email as confirmed. The API has no verification
// flow, so tests use this to reach the verified console paths.
func (r *SellerRepository) Verify(sellerID string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.sellers {
		if r.s.sellers[i].SellerID == sellerID {
			r.s.sellers[i].EmailVerified = true
		}
	}
}

type ProductRepository struct{ s *Store }

func (r *ProductRepository) Create(_ context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ProductID == product.ProductID {
			return models.ErrDuplicate
		}
	}
	r.s.products = append(r.s.products, *product)
	return nil
}

func (r *ProductRepository) FindByProductID(_ context.Context, productID string) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.index(productID); i >= 0 {
		p := r.s.products[i]
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepository) FindByProductIDs(_ context.Context, productIDs []string) ([]models.Product, error) {
	want := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}
	return r.filter(func(p models.Product) bool { return want[p.ProductID] }), nil
}

func (r *ProductRepository) Search(_ context.Context, q services.ProductQuery) ([]models.Product, error) {
	keyword := strings.ToLower(q.Keyword)
	return r.filter(func(p models.Product) bool {
		if p.Visibility != models.VisibilityOn {
			return false
		}
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			return false
		}
		return keyword == "" ||
			strings.Contains(strings.ToLower(p.Name), keyword) ||
			strings.Contains(strings.ToLower(p.Category), keyword)
	}), nil
}

func (r *ProductRepository) filter(match func(models.Product) bool) []models.Product {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.s.products {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

func (r *ProductRepository) index(productID string) int {
	for i, p := range r.s.products {
		if p.ProductID == productID {
			return i
		}
	}
	return -1
}

func (r *ProductRepository) Reserve(_ context.Context, productID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(productID)
	if i < 0 {
		return false, nil
	}
	if err := r.s.products[i].Sell(qty); err != nil {
		return false, nil
	}
	r.s.products[i].UpdatedAt = time.Now()
	return true, nil
}

func (r *ProductRepository) Release(_ context.Context, productID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.index(productID); i >= 0 {
		r.s.products[i].Unsell(qty)
		r.s.products[i].UpdatedAt = time.Now()
	}
	return nil
}

type CartRepository struct{ s *Store }

func copyCart(c *models.Cart) *models.Cart {
	out := *c
	out.ProductsInCart = append([]models.CartItem(nil), c.ProductsInCart...)
	return &out
}

func (r *CartRepository) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.carts[userID]; ok {
		return copyCart(c), nil
	}
	return nil, nil
}

func (r *CartRepository) AddItem(_ context.Context, userID, productID string, qty int) (*models.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	c, ok := r.s.carts[userID]
	if !ok {
		c = &models.Cart{UserID: userID, ProductsInCart: []models.CartItem{}, CreatedAt: now}
		r.s.carts[userID] = c
	}
	c.Add(productID, qty)
	c.UpdatedAt = now
	return copyCart(c), nil
}

func (r *CartRepository) SetQuantity(_ context.Context, userID, productID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return false, nil
	}
	return c.SetQuantity(productID, qty), nil
}

func (r *CartRepository) RemoveItem(_ context.Context, userID, productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return false, nil
	}
	return c.Remove(productID), nil
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.OrderID == order.OrderID {
			return models.ErrDuplicate
		}
	}
	r.s.orders = append(r.s.orders, *order)
	return nil
}

func (r *OrderRepository) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Order{}
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type ComplaintRepository struct{ s *Store }

func (r *ComplaintRepository) Create(_ context.Context, complaint *models.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.complaints {
		if c.ComplaintNumber == complaint.ComplaintNumber {
			return models.ErrDuplicate
		}
	}
	r.s.complaints = append(r.s.complaints, *complaint)
	return nil
}

func (r *ComplaintRepository) List(_ context.Context, status string) ([]models.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Complaint{}
	for _, c := range r.s.complaints {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ComplaintRepository) UpdateStatus(_ context.Context, complaintNumber, status string) (*models.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.complaints {
		if r.s.complaints[i].ComplaintNumber == complaintNumber {
			r.s.complaints[i].Status = status
			r.s.complaints[i].UpdatedAt = time.Now()
			c := r.s.complaints[i]
			return &c, nil
		}
	}
	return nil, nil
}

type CouponRepository struct{ s *Store }

func (r *CouponRepository) Create(_ context.Context, coupon *models.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.index(coupon.Code) >= 0 {
		return models.ErrDuplicate
	}
	r.s.coupons = append(r.s.coupons, *coupon)
	return nil
}

func (r *CouponRepository) index(code string) int {
	for i, c := range r.s.coupons {
		if c.Code == code {
			return i
		}
	}
	return -1
}

func (r *CouponRepository) List(_ context.Context) ([]models.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Coupon{}, r.s.coupons...), nil
}

func (r *CouponRepository) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i := r.index(code); i >= 0 {
		c := r.s.coupons[i]
		return &c, nil
	}
	return nil, nil
}

func (r *CouponRepository) DeleteMatching(_ context.Context, code string, discountPercentage int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(code)
	if i < 0 || r.s.coupons[i].DiscountPercentage != discountPercentage {
		return false, nil
	}
	r.s.coupons = append(r.s.coupons[:i], r.s.coupons[i+1:]...)
	return true, nil
}

func (r *CouponRepository) Redeem(_ context.Context, code string, now time.Time) (*models.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(code)
	if i < 0 || !r.s.coupons[i].Redeemable(now) {
		return nil, nil
	}
	r.s.coupons[i].UsageLimit--
	r.s.coupons[i].UpdatedAt = now
	c := r.s.coupons[i]
	return &c, nil
}

func (r *CouponRepository) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for i := range r.s.coupons {
		if r.s.coupons[i].IsActive && r.s.coupons[i].ExpirationDate.Before(now) {
			r.s.coupons[i].IsActive = false
			r.s.coupons[i].UpdatedAt = now
			n++
		}
	}
	return n, nil
}

var (
	_ services.UserRepository      = (*UserRepository)(nil)
	_ services.SellerRepository    = (*SellerRepository)(nil)
	_ services.ProductRepository   = (*ProductRepository)(nil)
	_ services.CartRepository      = (*CartRepository)(nil)
	_ services.OrderRepository     = (*OrderRepository)(nil)
	_ services.ComplaintRepository = (*ComplaintRepository)(nil)
	_ services.CouponRepository    = (*CouponRepository)(nil)
)
