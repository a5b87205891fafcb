package middleware

import (
	"log"
	"time"

	"github.com/Shrey0428/ExoticBill/pkg/utils"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs one line per request tagged with its request ID
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.NewRequestID()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		who := "-"
		if principal := GetPrincipal(c); principal != nil {
			who = principal.Username
		}

		tag := shortID(requestID)
		log.Printf("[%s] %s | %d | %v | %s | %s | %s",
			tag,
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			who,
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", tag, e.Err)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
