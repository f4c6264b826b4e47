package gateway

import (
	"net/http"
	"sync"

	"shareit/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimiter keeps one token bucket per caller, keyed by the identity
// header when present and the client address otherwise.
type rateLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	return &rateLimiter{rps: cfg.RPS, burst: cfg.Burst}
}

func (rl *rateLimiter) get(key string) *rate.Limiter {
	if l, ok := rl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(rl.rps), rl.burst))
	return l.(*rate.Limiter)
}

func (gw *Gateway) limitRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(userHeader)
		if key == "" {
			key = c.ClientIP()
		}
		if !gw.limiter.get(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
