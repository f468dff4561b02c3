package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/breeze/internal/helpers"
	"github.com/joshua-takyi/breeze/internal/models"
)

// RateLimiter is a per-client fixed window in front of the generation
// routes, which each cost one model call.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	maxRate int
	window  time.Duration
	now     func() time.Time
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

func NewRateLimiter(maxRate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		maxRate: maxRate,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether key may make another request in the current window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.prune(now)

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.lastReset) >= rl.window {
		rl.buckets[key] = &bucket{tokens: rl.maxRate - 1, lastReset: now}
		return true
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// prune drops expired buckets once the map grows; caller holds mu.
func (rl *RateLimiter) prune(now time.Time) {
	if len(rl.buckets) < 1024 {
		return
	}
	for key, b := range rl.buckets {
		if now.Sub(b.lastReset) >= rl.window {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit rejects clients over the limit with a 429 JSON envelope.
// A nil limiter allows everything.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return RateLimitWith(rl, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			models.ErrorResponse("rate limit exceeded, please wait a moment").WithRequestID(helpers.RequestID(c)))
	})
}

// RateLimitWith is RateLimit with a caller-supplied rejection. reject must
// write a 429 and abort; Retry-After is already set when it runs.
func RateLimitWith(rl *RateLimiter, reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
		reject(c)
	}
}
