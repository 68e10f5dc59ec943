package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mera-bestie/metrics"
)

// Metrics records request count and latency per route template, so
// /user/:userId is one series rather than one per user.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
