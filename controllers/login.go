package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/session"
)

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	user, err := h.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.failAuth(c, err)
		return
	}

	token, err := h.Sessions.Issue(c.Request.Context(), session.KindUser, user.UserID)
	if err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "userId": user.UserID})
}
