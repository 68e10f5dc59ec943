package routes

import (
	"github.com/gin-gonic/gin"

	"mera-bestie/controllers"
)

func SetupAuthRoutes(r *gin.Engine, h *controllers.Handler, loginLimit gin.HandlerFunc) {
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/signup", h.Register)
	auth.POST("/login", loginLimit, h.Login)
	auth.POST("/logout", h.Logout)

	r.GET("/user/:userId", h.GetUser)

	seller := r.Group("/seller")
	seller.POST("/signup", h.SellerSignup)
	seller.POST("/login", h.SellerLogin)
	seller.POST("/logout", h.SellerLogout)
	seller.GET("/:sellerId", h.GetSeller)

	admin := r.Group("/admin")
	admin.POST("/login", loginLimit, h.ConsoleLogin)
	admin.POST("/seller/signup", h.ConsoleSignup)
	admin.POST("/verify-seller", h.VerifySeller)
	admin.POST("/logout", h.ConsoleLogout)
}

func SetupShopRoutes(r *gin.Engine, h *controllers.Handler, requireUser gin.HandlerFunc) {
	cart := r.Group("/cart")
	cart.POST("/addtocart", h.AddToCart)
	cart.POST("/get-cart", h.GetCart)
	cart.PUT("/update-quantity", h.UpdateQuantity)
	cart.POST("/delete-items", h.DeleteCartItem)
	cart.POST("/place-order", h.PlaceOrder)

	r.GET("/orders", requireUser, h.GetUserOrders)

	complaints := r.Group("/complaints")
	complaints.POST("/post-complaints", h.PostComplaint)
	complaints.GET("/get-complaints", h.GetComplaints)
	complaints.PUT("/update-complaint-status", h.UpdateComplaintStatus)

	coupon := r.Group("/coupon")
	coupon.GET("/get-coupon", h.GetCoupons)
	coupon.POST("/save-coupon", h.SaveCoupon)
	coupon.POST("/verify-coupon", h.VerifyCoupon)
	coupon.POST("/redeem-coupon", h.RedeemCoupon)
	coupon.DELETE("/delete-coupon", h.DeleteCoupon)
}

func SetupProductRoutes(r *gin.Engine, h *controllers.Handler, requireSeller gin.HandlerFunc) {
	r.GET("/products", h.SearchProducts)
	r.GET("/products/:productId", h.GetProduct)
	r.POST("/products", requireSeller, h.AddProduct)
}
