package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mera-bestie/session"
)

// Context keys set by RequireSession.
const (
	UserIDKey   = "user_id"
	SellerIDKey = "seller_id"
)

// RequireSession rejects requests without a live session of the given kind
// and stores the session subject in the context under UserIDKey or
// SellerIDKey.
func RequireSession(sessions *session.Manager, cookieName string, kind session.Kind, logger *zap.Logger) gin.HandlerFunc {
	key := UserIDKey
	if kind == session.KindSeller {
		key = SellerIDKey
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		sess, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Error("session lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if sess.Kind != kind {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(key, sess.Subject)
		c.Next()
	}
}
