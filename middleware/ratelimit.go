package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Simple in-memory rate limiter, per client IP over a sliding one-minute window.
type rateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
}

var limiter = &rateLimiter{
	requests: make(map[string][]time.Time),
}

// RateLimitMiddleware limits requests per IP address.
// Default: 100 requests per minute per IP.
func RateLimitMiddleware(requestsPerMinute int) gin.HandlerFunc {
	if requestsPerMinute == 0 {
		requestsPerMinute = 100
	}

	// Drop idle IPs every 5 minutes so the map does not grow unbounded.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			limiter.mu.Lock()
			now := time.Now()
			for ip, timestamps := range limiter.requests {
				valid := timestamps[:0]
				for _, t := range timestamps {
					if now.Sub(t) < time.Minute {
						valid = append(valid, t)
					}
				}
				if len(valid) == 0 {
					delete(limiter.requests, ip)
				} else {
					limiter.requests[ip] = valid
				}
			}
			limiter.mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		limiter.mu.Lock()
		defer limiter.mu.Unlock()

		now := time.Now()
		valid := []time.Time{}
		for _, t := range limiter.requests[ip] {
			if now.Sub(t) < time.Minute {
				valid = append(valid, t)
			}
		}

		if len(valid) >= requestsPerMinute {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		limiter.requests[ip] = append(valid, now)

		c.Next()
	}
}
