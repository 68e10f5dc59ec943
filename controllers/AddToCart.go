package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cartItemInput struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart merges a quantity of a product into the user's cart.
func (h *Handler) AddToCart(c *gin.Context) {
	var input cartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	cart, err := h.Carts.AddToCart(c.Request.Context(), input.UserID, input.ProductID, input.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart successfully", "cart": cart})
}

func (h *Handler) GetCart(c *gin.Context) {
	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	view, err := h.Carts.GetCart(c.Request.Context(), input.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view.Cart, "total": view.Total})
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	var input struct {
		UserID     string `json:"userId"`
		ProductID  string `json:"productId"`
		ProductQty int    `json:"productQty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.Carts.UpdateQuantity(c.Request.Context(), input.UserID, input.ProductID, input.ProductQty); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity updated successfully."})
}

func (h *Handler) DeleteCartItem(c *gin.Context) {
	var input cartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.Carts.RemoveItem(c.Request.Context(), input.UserID, input.ProductID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted successfully."})
}
