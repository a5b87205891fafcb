package middleware

import (
	"fmt"
	"log"

	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// LoginRateLimiter limits login attempts per client IP.
// formatted is a limiter rate such as "10-M" (ten per minute).
func LoginRateLimiter(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("parse login rate limit %q: %w", formatted, err)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			log.Printf("Warning: login rate limit reached for %s", c.ClientIP())
			response.TooManyRequests(c, "Too many login attempts. Please try again later.")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			log.Printf("Warning: login rate limiter failed: %v", err)
			c.Next()
		}),
	), nil
}
