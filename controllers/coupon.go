package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/services"
)

type couponCodeInput struct {
	Code string `json:"code"`
}

func (h *Handler) GetCoupons(c *gin.Context) {
	coupons, err := h.Coupons.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupons": coupons})
}

// SaveCoupon creates a coupon and emails every user about it before
// responding.
func (h *Handler) SaveCoupon(c *gin.Context) {
	var input services.SaveCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	coupon, err := h.Coupons.Save(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Coupon saved successfully", "coupon": coupon})
}

func (h *Handler) VerifyCoupon(c *gin.Context) {
	var input couponCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	discount, err := h.Coupons.Verify(c.Request.Context(), input.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "discountPercentage": discount})
}

func (h *Handler) RedeemCoupon(c *gin.Context) {
	var input couponCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	coupon, err := h.Coupons.Redeem(c.Request.Context(), input.Code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            "Coupon redeemed successfully",
		"discountPercentage": coupon.DiscountPercentage,
		"usageLimit":         coupon.UsageLimit,
	})
}

func (h *Handler) DeleteCoupon(c *gin.Context) {
	var input struct {
		Code               string `json:"code"`
		DiscountPercentage int    `json:"discountPercentage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.Coupons.Delete(c.Request.Context(), input.Code, input.DiscountPercentage); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deleted successfully"})
}
