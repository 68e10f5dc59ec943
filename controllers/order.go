package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/middleware"
	"mera-bestie/models"
	"mera-bestie/services"
)

type placeOrderInput struct {
	UserID          string             `json:"userId" binding:"required"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	Address         string             `json:"address"`
	Price           float64            `json:"price"`
	ProductsOrdered []models.OrderItem `json:"productsOrdered" binding:"required,min=1,dive"`
}

// PlaceOrder reserves stock and records the order. Every line item must be
// available or nothing is ordered.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var input placeOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	order, err := h.Orders.PlaceOrder(c.Request.Context(), services.PlaceOrderInput{
		UserID:          input.UserID,
		Date:            input.Date,
		Time:            input.Time,
		Address:         input.Address,
		Price:           input.Price,
		ProductsOrdered: input.ProductsOrdered,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Order placed successfully",
		"orderId":    order.OrderID,
		"trackingId": order.TrackingID,
	})
}

// GetUserOrders lists the orders of the logged in user.
func (h *Handler) GetUserOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context(), c.GetString(middlewares.UserIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
