package middleware

import (
	"net/http"
	"strconv"

	"central360/internal/rate_limiter"

	"github.com/gin-gonic/gin"
)

// WriteRateLimit throttles mutating requests per client IP.
func WriteRateLimit(rl *rate_limiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.IsAllowed(ip) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Limit()))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.GetRemainingRequests(ip)))
		c.Next()
	}
}
