package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// PrincipalRateLimiter gives every authenticated principal its own token bucket.
// Requests without a principal are keyed by client IP.
type PrincipalRateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	Requests        int           // requests allowed per Window
	Window          time.Duration // refill period of the bucket
	CleanupInterval time.Duration // how often idle entries are dropped
	EntryTTL        time.Duration // how long an idle entry is kept
}

// DefaultRateLimiterConfig returns the limits used when none are configured
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Requests:        100,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
		EntryTTL:        10 * time.Minute,
	}
}

// NewPrincipalRateLimiter creates the limiter and starts its cleanup goroutine
func NewPrincipalRateLimiter(cfg RateLimiterConfig) *PrincipalRateLimiter {
	def := DefaultRateLimiterConfig()
	if cfg.Requests <= 0 {
		cfg.Requests = def.Requests
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = def.EntryTTL
	}

	rl := &PrincipalRateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rate:        rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:       cfg.Requests,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *PrincipalRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (rl *PrincipalRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stop:
			return
		}
	}
}

func (rl *PrincipalRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Stop ends the cleanup goroutine
func (rl *PrincipalRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware returns a Gin middleware applying the per-principal limit
func (rl *PrincipalRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if principal := GetPrincipal(c); principal != nil {
			key = "user:" + principal.Username
		}

		limiter := rl.getLimiter(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}

// Stats returns current statistics about the rate limiter
func (rl *PrincipalRateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"active_keys":     len(rl.limiters),
		"rate_per_second": float64(rl.rate),
		"burst_size":      rl.burst,
	}
}
