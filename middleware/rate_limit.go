package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter is a per-key fixed-window counter. State is in-process; the limit
// applies per API instance, which matches the single-instance deployment this
// protects.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*rateBucket
}

type rateBucket struct {
	count       int
	windowStart time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*rateBucket),
	}
}

// Allow reports whether the key may proceed, and when a denied key's window
// resets.
func (l *Limiter) Allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	bucket, ok := l.buckets[key]
	if !ok || now.Sub(bucket.windowStart) >= l.window {
		l.buckets[key] = &rateBucket{count: 1, windowStart: now}
		return true, time.Time{}
	}

	if bucket.count >= l.limit {
		return false, bucket.windowStart.Add(l.window)
	}

	bucket.count++
	return true, time.Time{}
}

// UserKey builds the per-user bucket key for a named limiter.
func UserKey(name string, userID int) string {
	return fmt.Sprintf("%s:%d", name, userID)
}

// RateLimit limits authenticated requests per user. Must run after
// AuthMiddleware so userID is set. Denied requests get a 429 with a
// machine-readable reset time.
func RateLimit(name string, limit int, window time.Duration) gin.HandlerFunc {
	limiter := NewLimiter(limit, window)

	return func(c *gin.Context) {
		userID := c.GetInt("userID")
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		allowed, resetAt := limiter.Allow(UserKey(name, userID))
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":    "Too many requests. Please try again later.",
				"reset_at": resetAt.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
