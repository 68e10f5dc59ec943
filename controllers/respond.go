package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mera-bestie/services"
)

func statusOf(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation, services.KindConflict, services.KindAuth, services.KindStock:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindUnverified:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes {"success": false, "message": ...}. Internal errors also carry
// the underlying cause under "error".
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusOf(err)
	body := gin.H{"success": false, "message": services.MessageOf(err)}
	if status == http.StatusInternalServerError {
		h.logFailure(c, err)
		body["error"] = causeOf(err)
	}
	c.JSON(status, body)
}

// failAuth writes the {"error": ...} shape used by the account routes.
func (h *Handler) failAuth(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logFailure(c, err)
	}
	c.JSON(status, gin.H{"error": services.MessageOf(err)})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "details": err.Error()})
}

func (h *Handler) logFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	h.Logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err))
}

func causeOf(err error) string {
	var e *services.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.Cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Sessions.TTL().Seconds()),
		Secure:   h.Cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.Cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.Cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// revokeSession ends the session named by the request cookie, if any.
func (h *Handler) revokeSession(c *gin.Context) error {
	token, err := c.Cookie(h.Cookie.CookieName)
	if err != nil {
		return nil
	}
	return h.Sessions.Revoke(c.Request.Context(), token)
}
