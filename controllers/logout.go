package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout ends the caller's session. Calling it without a session, or twice,
// still succeeds.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.revokeSession(c); err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging out"})
		return
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *Handler) SellerLogout(c *gin.Context) {
	if err := h.revokeSession(c); err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging out"})
		return
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Seller logout successful"})
}
