package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchProducts lists visible products. Both ?q= and ?category= are
// optional; without them every visible product is returned.
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.Products.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}
