package controllers

import (
	"go.uber.org/zap"

	"mera-bestie/config"
	"mera-bestie/services"
	"mera-bestie/session"
)

// Handler carries the dependencies shared by every route handler.
type Handler struct {
	Accounts   *services.AccountService
	Carts      *services.CartService
	Orders     *services.OrderService
	Complaints *services.ComplaintService
	Coupons    *services.CouponService
	Products   *services.ProductService
	Sessions   *session.Manager
	Cookie     config.SessionConfig
	Logger     *zap.Logger
}
