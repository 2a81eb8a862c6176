package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	"github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/response"
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

// Idempotency replays the stored response when a print request is retried
// with the same Idempotency-Key, so a retry never prints the labels twice.
// The key is reserved before the handler runs; a retry that arrives while
// the first request is still printing gets 409. Server errors release the
// key so the request may be retried with it.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		operatorIDValue, exists := c.Get("operator_id")
		if !exists {
			c.Next()
			return
		}
		operatorID, ok := operatorIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		endpoint := c.Request.Method + " " + c.FullPath()
		hash := requestHash(endpoint, body)
		ctx := c.Request.Context()

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, operatorID)
		if err != nil {
			log.Printf("Idempotency lookup failed: %v", err)
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired() {
			respondStored(c, existing, hash)
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:         idempotencyKey,
			OperatorID:  operatorID,
			Endpoint:    endpoint,
			RequestHash: hash,
			ExpiresAt:   time.Now().Add(IdempotencyKeyTTL),
		}
		reserved, err := config.Repo.Reserve(ctx, ikey)
		if err != nil {
			log.Printf("Idempotency reserve failed: %v", err)
			c.Next()
			return
		}
		if !reserved {
			// another request took the key between lookup and reserve
			existing, err = config.Repo.GetByKey(ctx, idempotencyKey, operatorID)
			if err != nil || existing == nil {
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
				c.Abort()
				return
			}
			respondStored(c, existing, hash)
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		completed := false
		defer func() {
			if completed {
				return
			}
			if err := config.Repo.Delete(context.WithoutCancel(ctx), idempotencyKey, operatorID); err != nil {
				log.Printf("Idempotency release failed: %v", err)
			}
		}()

		c.Next()

		if c.Writer.Status() >= 500 {
			return
		}

		ikey.ResponseCode = c.Writer.Status()
		ikey.ResponseBody = blw.body.String()
		if err := config.Repo.Complete(context.WithoutCancel(ctx), ikey); err != nil {
			log.Printf("Idempotency store failed: %v", err)
			return
		}
		completed = true
	}
}

// respondStored answers a request whose key is already taken.
func respondStored(c *gin.Context, existing *entity.IdempotencyKey, hash string) {
	switch {
	case existing.RequestHash != "" && existing.RequestHash != hash:
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
	case existing.IsPending():
		response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
	default:
		c.Header("X-Idempotency-Replayed", "true")
		c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
	}
	c.Abort()
}

func requestHash(endpoint string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
