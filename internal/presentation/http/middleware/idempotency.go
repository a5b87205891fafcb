package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	// Now defaults to time.Now
	Now func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a principal repeats a POST with the same key.
// Only successful responses are stored so a rejected sale can be corrected and retried.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		if len(idempotencyKey) > 255 {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		principal := GetPrincipal(c)
		if principal == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, principal.Username)
		if err != nil {
			log.Printf("Warning: idempotency lookup failed: %v", err)
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired(now()) {
			if existing.RequestHash != requestHash {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request")
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			Username:     principal.Username,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			RequestHash:  requestHash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.Printf("Warning: failed to store idempotency key: %v", err)
		}
	}
}
