package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mera-bestie/config"
	"mera-bestie/controllers"
	"mera-bestie/database/memory"
	"mera-bestie/middleware"
	"mera-bestie/models"
	"mera-bestie/routes"
	"mera-bestie/services"
	"mera-bestie/session"
	"mera-bestie/utils"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithProxies(t, nil)
}

func newTestServerWithProxies(t *testing.T, trustedProxies []string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := memory.New()
	ids := utils.RandomIDs{}
	notifier := services.NewNotifier(utils.LogSender{Logger: logger}, time.Second, 2, logger)
	t.Cleanup(notifier.Wait)

	cookie := config.SessionConfig{Secret: "test-secret", CookieName: "token", TTL: time.Hour}
	h := &controllers.Handler{
		Accounts:   services.NewAccountService(store.Users(), store.Sellers(), ids, logger),
		Carts:      services.NewCartService(store.Carts(), store.Products(), logger),
		Orders:     services.NewOrderService(store.Users(), store.Products(), store.Orders(), notifier, ids, logger),
		Complaints: services.NewComplaintService(store.Complaints(), notifier, ids, logger),
		Coupons:    services.NewCouponService(store.Coupons(), store.Users(), notifier, 24*time.Hour, logger),
		Products:   services.NewProductService(store.Products(), logger),
		Sessions:   session.NewManager(session.NewMemoryStore(), cookie.Secret, cookie.TTL),
		Cookie:     cookie,
		Logger:     logger,
	}

	router := gin.New()
	require.NoError(t, routes.SetupRoutes(router, h, routes.Options{
		CORS:           config.CORSConfig{AllowOrigins: []string{"*"}},
		LoginLimiter:   middlewares.NewLoginLimiter(5, 15*time.Minute),
		TrustedProxies: trustedProxies,
	}))
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// loginFrom posts a failing login whose X-Forwarded-For names forwardedFor.
// httptest requests arrive from 192.0.2.1.
func (s *testServer) loginFrom(t *testing.T, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString(`{"email":"nobody@example.com","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return s.serve(req).Code
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestRegisterLoginCartFlow(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.Products().Create(context.Background(), &models.Product{
		ProductID: "p1", Name: "Mug", Price: 5, InStockValue: 20, Visibility: models.VisibilityOn,
	}))

	rec := s.do(t, http.MethodPost, "/auth/register", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "hunter22", "phone": "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	userID := decode(t, rec)["userId"].(string)
	require.NotEmpty(t, userID)
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)

	rec = s.do(t, http.MethodPost, "/auth/login", gin.H{"email": "asha@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, userID, decode(t, rec)["userId"])

	rec = s.do(t, http.MethodPost, "/auth/login", gin.H{"email": "asha@example.com", "password": "wrong"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])

	for _, qty := range []int{2, 3} {
		rec = s.do(t, http.MethodPost, "/cart/addtocart", gin.H{"userId": userID, "productId": "p1", "quantity": qty})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/cart/get-cart", gin.H{"userId": userID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	items := body["cart"].(map[string]any)["productsInCart"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 5, items[0].(map[string]any)["productQty"])
	assert.EqualValues(t, 25, body["total"])

	rec = s.do(t, http.MethodPost, "/cart/place-order", gin.H{
		"userId": userID, "date": "2025-03-01", "time": "10:00", "address": "12 MG Road", "price": 25,
		"productsOrdered": []gin.H{{"productId": "p1", "quantity": 5}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	orderID := decode(t, rec)["orderId"]

	rec = s.do(t, http.MethodGet, "/orders", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	orders := decode(t, rec)["orders"].([]any)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].(map[string]any)["orderId"])

	rec = s.do(t, http.MethodGet, "/user/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha", decode(t, rec)["name"])

	rec = s.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/orders", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(t, http.MethodPost, "/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		key    string
		want   string
	}{
		{"bad email", http.MethodPost, "/auth/signup", gin.H{"name": "A", "email": "x", "password": "p", "phone": "9876543210"}, http.StatusBadRequest, "error", "Invalid email format"},
		{"unknown user", http.MethodGet, "/user/nobody", nil, http.StatusNotFound, "error", "User not found"},
		{"unknown seller", http.MethodGet, "/seller/MBSLR00000", nil, http.StatusNotFound, "error", "Seller not found"},
		{"zero quantity", http.MethodPost, "/cart/addtocart", gin.H{"userId": "u", "productId": "p", "quantity": 0}, http.StatusBadRequest, "message", "Quantity must be a positive number."},
		{"empty cart", http.MethodPost, "/cart/get-cart", gin.H{"userId": "u"}, http.StatusNotFound, "message", "Cart is empty"},
		{"missing cart", http.MethodPut, "/cart/update-quantity", gin.H{"userId": "u", "productId": "p", "productQty": 1}, http.StatusNotFound, "message", "Cart not found."},
		{"order for unknown user", http.MethodPost, "/cart/place-order", gin.H{"userId": "u", "productsOrdered": []gin.H{{"productId": "p", "quantity": 1}}}, http.StatusNotFound, "message", "User not found"},
		{"complaint missing fields", http.MethodPost, "/complaints/post-complaints", gin.H{"name": "A"}, http.StatusBadRequest, "message", "All fields (name, email, message, userType) are required."},
		{"unknown complaint", http.MethodPut, "/complaints/update-complaint-status", gin.H{"complaintId": "1", "status": "Resolved"}, http.StatusNotFound, "message", "Complaint not found"},
		{"coupon missing fields", http.MethodPost, "/coupon/save-coupon", gin.H{"code": "X"}, http.StatusBadRequest, "message", "Coupon code and discount percentage are required."},
		{"unknown coupon", http.MethodPost, "/coupon/verify-coupon", gin.H{"code": "X"}, http.StatusNotFound, "message", "Invalid coupon code"},
		{"delete unknown coupon", http.MethodDelete, "/coupon/delete-coupon", gin.H{"code": "X", "discountPercentage": 5}, http.StatusNotFound, "message", "Coupon not found"},
		{"unknown seller id", http.MethodPost, "/admin/verify-seller", gin.H{"sellerId": "MBSLR00000"}, http.StatusNotFound, "message", "Invalid seller ID"},
		{"malformed verify-seller body", http.MethodPost, "/admin/verify-seller", "not an object", http.StatusBadRequest, "message", "Invalid input"},
		{"missing seller id", http.MethodPost, "/admin/verify-seller", gin.H{}, http.StatusBadRequest, "message", "Seller ID is required"},
		{"malformed console logout body", http.MethodPost, "/admin/logout", "not an object", http.StatusBadRequest, "message", "Invalid input"},
		{"console login missing fields", http.MethodPost, "/admin/login", gin.H{"sellerId": "MBSLR00000"}, http.StatusBadRequest, "error", "Missing required fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, decode(t, rec)[tt.key])
		})
	}
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.store.Products().Create(ctx, &models.Product{ProductID: "p1", InStockValue: 1, Visibility: models.VisibilityOn}))

	rec := s.do(t, http.MethodPost, "/auth/register", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "hunter22", "phone": "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := decode(t, rec)["userId"]

	rec = s.do(t, http.MethodPost, "/cart/place-order", gin.H{
		"userId": userID, "productsOrdered": []gin.H{{"productId": "p1", "quantity": 2}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "One or more products are out of stock.", decode(t, rec)["message"])

	rec = s.do(t, http.MethodPost, "/cart/place-order", gin.H{"userId": userID, "productsOrdered": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSellerConsoleFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/admin/seller/signup", gin.H{
		"emailId": "shop@example.com", "phoneNumber": "9876543210", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sellerID := decode(t, rec)["sellerId"].(string)

	login := gin.H{"sellerId": sellerID, "emailOrPhone": "shop@example.com", "password": "hunter22"}
	rec = s.do(t, http.MethodPost, "/admin/login", login)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Account not verified", decode(t, rec)["error"])

	s.store.Sellers().Verify(sellerID)
	rec = s.do(t, http.MethodPost, "/admin/login", login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(t, rec)

	rec = s.do(t, http.MethodPost, "/admin/verify-seller", gin.H{"sellerId": sellerID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "loggedin", decode(t, rec)["loggedIn"])

	rec = s.do(t, http.MethodPost, "/products", gin.H{
		"productId": "p1", "name": "Mug", "price": 5, "img": "mug.jpg", "category": "Kitchen", "inStockValue": 3,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/products?q=mug", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["products"], 1)

	rec = s.do(t, http.MethodGet, "/products/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["product"].(map[string]any)["totalStockValue"])

	rec = s.do(t, http.MethodPost, "/admin/logout", gin.H{"sellerId": sellerID}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "loggedout", decode(t, rec)["loggedIn"])

	rec = s.do(t, http.MethodPost, "/products", gin.H{"productId": "p2"}, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductsRequireSellerSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/products", gin.H{"productId": "p1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/register", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "hunter22", "phone": "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	userCookie := sessionCookie(t, rec)

	rec = s.do(t, http.MethodPost, "/products", gin.H{"productId": "p1"}, userCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a user session is not a seller session")
}

func TestCouponRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/coupon/save-coupon", gin.H{"code": "SAVE10", "discountPercentage": 10, "usageLimit": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/coupon/verify-coupon", gin.H{"code": "SAVE10"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 10, decode(t, rec)["discountPercentage"])

	rec = s.do(t, http.MethodPost, "/coupon/redeem-coupon", gin.H{"code": "SAVE10"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/coupon/verify-coupon", gin.H{"code": "SAVE10"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/coupon/delete-coupon", gin.H{"code": "SAVE10", "discountPercentage": 20})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, "/coupon/get-coupon", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["coupons"], 1)

	rec = s.do(t, http.MethodDelete, "/coupon/delete-coupon", gin.H{"code": "SAVE10", "discountPercentage": 10})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t)
	creds := gin.H{"email": "nobody@example.com", "password": "x"}

	for i := 0; i < 5; i++ {
		rec := s.do(t, http.MethodPost, "/auth/login", creds)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
	rec := s.do(t, http.MethodPost, "/auth/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLoginRateLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	s := newTestServer(t)

	limited := 0
	for i := 0; i < 20; i++ {
		if s.loginFrom(t, fmt.Sprintf("10.0.0.%d", i)) == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 15, limited)
}

func TestLoginRateLimitHonoursTrustedProxy(t *testing.T) {
	s := newTestServerWithProxies(t, []string{"192.0.2.0/24"})

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusBadRequest, s.loginFrom(t, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, s.loginFrom(t, "10.0.0.1"))
	assert.Equal(t, http.StatusBadRequest, s.loginFrom(t, "10.0.0.2"))
}

func TestHealthAndHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	rec = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "merabestie_http_requests_total")
}
