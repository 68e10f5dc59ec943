package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/middleware"
	"mera-bestie/services"
)

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Products.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// AddProduct lists a new product under the logged in seller.
func (h *Handler) AddProduct(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	product, err := h.Products.Create(c.Request.Context(), c.GetString(middlewares.SellerIDKey), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "product": product})
}
