package server

import (
	"Cruder/internal/config"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per client IP. A non-positive rate
// disables it.
func RateLimit(cfg config.RateLimitConfig) fiber.Handler {
	if cfg.Rate <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	retryAfter := strconv.Itoa(int(math.Ceil(1 / cfg.Rate)))

	var (
		mutex       sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(c *fiber.Ctx) error {
		key := c.IP()

		mutex.Lock()
		now := time.Now()
		if now.Sub(lastCleanup) >= limiterCleanupInterval {
			for k, e := range limiters {
				if now.Sub(e.lastSeen) > limiterMaxIdle {
					delete(limiters, k)
				}
			}
			lastCleanup = now
		}
		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(cfg.Rate), burst)}
			limiters[key] = entry
		}
		entry.lastSeen = now
		mutex.Unlock()

		if !entry.limiter.Allow() {
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		}
		return c.Next()
	}
}
