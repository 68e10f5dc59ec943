package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/services"
	"mera-bestie/session"
)

// Register creates a user account and logs the new user in.
func (h *Handler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	user, err := h.Accounts.Register(c.Request.Context(), input)
	if err != nil {
		h.failAuth(c, err)
		return
	}

	token, err := h.Sessions.Issue(c.Request.Context(), session.KindUser, user.UserID)
	if err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error registering user"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": user.UserID})
}
