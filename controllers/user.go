package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUser returns the public name of a user.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Accounts.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.failAuth(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": user.Name})
}
