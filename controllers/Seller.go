package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mera-bestie/models"
	"mera-bestie/services"
	"mera-bestie/session"
)

type sellerLoginInput struct {
	SellerID     string `json:"sellerId"`
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

type sellerIDInput struct {
	SellerID string `json:"sellerId"`
}

func (h *Handler) SellerSignup(c *gin.Context) {
	var input services.SellerSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	h.signupSeller(c, input)
}

// ConsoleSignup registers a seller from the console form, which only asks
// for contact details and a password.
func (h *Handler) ConsoleSignup(c *gin.Context) {
	var input struct {
		PhoneNumber string `json:"phoneNumber"`
		EmailID     string `json:"emailId"`
		Password    string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}
	h.signupSeller(c, services.SellerSignupInput{
		EmailID:     input.EmailID,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	})
}

func (h *Handler) signupSeller(c *gin.Context, input services.SellerSignupInput) {
	seller, err := h.Accounts.SellerSignup(c.Request.Context(), input)
	if err != nil {
		h.failAuth(c, err)
		return
	}

	token, err := h.Sessions.Issue(c.Request.Context(), session.KindSeller, seller.SellerID)
	if err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error registering seller"})
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"message": "Seller registered successfully", "sellerId": seller.SellerID})
}

func (h *Handler) SellerLogin(c *gin.Context) {
	var input sellerLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	seller, err := h.Accounts.SellerLogin(c.Request.Context(), input.SellerID, input.EmailOrPhone, input.Password)
	if err != nil {
		h.failAuth(c, err)
		return
	}
	h.issueSellerSession(c, seller.SellerID, gin.H{"message": "Login successful", "sellerId": seller.SellerID})
}

// GetSeller returns the public profile of a seller.
func (h *Handler) GetSeller(c *gin.Context) {
	seller, err := h.Accounts.GetSeller(c.Request.Context(), c.Param("sellerId"))
	if err != nil {
		h.failAuth(c, err)
		return
	}
	c.JSON(http.StatusOK, seller.Profile())
}

func (h *Handler) ConsoleLogin(c *gin.Context) {
	var input sellerLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	seller, err := h.Accounts.ConsoleLogin(c.Request.Context(), input.SellerID, input.EmailOrPhone, input.Password)
	if err != nil {
		h.failAuth(c, err)
		return
	}
	h.issueSellerSession(c, seller.SellerID, gin.H{
		"success":  true,
		"message":  "Login successful",
		"sellerId": seller.SellerID,
	})
}

func (h *Handler) issueSellerSession(c *gin.Context, sellerID string, body gin.H) {
	token, err := h.Sessions.Issue(c.Request.Context(), session.KindSeller, sellerID)
	if err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, body)
}

// VerifySeller reports whether a seller id exists and its login state.
func (h *Handler) VerifySeller(c *gin.Context) {
	var input sellerIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	seller, err := h.Accounts.GetSeller(c.Request.Context(), input.SellerID)
	if err != nil {
		if services.KindOf(err) == services.KindNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid seller ID"})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Valid seller ID",
		"loggedIn": seller.LoggedIn,
	})
}

func (h *Handler) ConsoleLogout(c *gin.Context) {
	var input sellerIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.Accounts.ConsoleLogout(c.Request.Context(), input.SellerID); err != nil {
		h.failAuth(c, err)
		return
	}
	if err := h.revokeSession(c); err != nil {
		h.logFailure(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging out"})
		return
	}
	h.clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Seller logged out successfully",
		"loggedIn": models.LoggedOut,
	})
}
