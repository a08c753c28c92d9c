package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

type memoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
}

// SimpleRateLimit blocks clients that send more than maxRequests per window.
// State is per process; RateLimit uses it when Redis is not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	l := &memoryLimiter{clients: make(map[string]*clientInfo)}

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), maxRequests, window) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

func (l *memoryLimiter) allow(ip string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	ci, ok := l.clients[ip]
	if !ok || now.Sub(ci.last) > window {
		l.clients[ip] = &clientInfo{last: now, count: 1}
		return maxRequests > 0
	}

	ci.count++
	return ci.count <= maxRequests
}
