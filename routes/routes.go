package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mera-bestie/config"
	"mera-bestie/controllers"
	"mera-bestie/metrics"
	"mera-bestie/middleware"
	"mera-bestie/session"
)

// Options carries what the routes need besides the handlers.
type Options struct {
	CORS         config.CORSConfig
	LoginLimiter *middlewares.LoginLimiter
	// TrustedProxies lists the proxies whose X-Forwarded-For is believed
	// when resolving the client IP. Empty means the peer address is used.
	TrustedProxies []string
}

func SetupRoutes(r *gin.Engine, h *controllers.Handler, opts Options) error {
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(opts.CORS.AllowOrigins) == 0 || containsWildcard(opts.CORS.AllowOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		// Session cookies only cross origins that are listed explicitly.
		corsConfig.AllowOrigins = opts.CORS.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	requireUser := middlewares.RequireSession(h.Sessions, h.Cookie.CookieName, session.KindUser, h.Logger)
	requireSeller := middlewares.RequireSession(h.Sessions, h.Cookie.CookieName, session.KindSeller, h.Logger)

	SetupAuthRoutes(r, h, opts.LoginLimiter.Middleware())
	SetupShopRoutes(r, h, requireUser)
	SetupProductRoutes(r, h, requireSeller)
	return nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
