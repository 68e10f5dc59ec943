package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter allows each client IP a burst of attempts that refills
// evenly over window.
type LoginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	attempts int
	window   time.Duration
	now      func() time.Time
}

func NewLoginLimiter(attempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		visitors: make(map[string]*visitor),
		attempts: attempts,
		window:   window,
		now:      time.Now,
	}
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		every := rate.Every(l.window / time.Duration(l.attempts))
		v = &visitor{limiter: rate.NewLimiter(every, l.attempts)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.evict(now)
	return v.limiter.AllowN(now, 1)
}

// evict drops visitors idle for a full window; their bucket has refilled.
func (l *LoginLimiter) evict(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.window {
			delete(l.visitors, ip)
		}
	}
}

func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}
