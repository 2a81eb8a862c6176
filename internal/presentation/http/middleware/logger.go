package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware assigns a request ID and logs one line per request:
//
//	[1a2b3c4d] POST /api/v1/printer/print | 207 | 1.2s | op=5f0c... | 10.0.0.4
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		tag := requestID
		if len(tag) > 8 {
			tag = tag[:8]
		}
		operator := "-"
		if id, ok := c.Get("operator_id"); ok {
			if operatorID, ok := id.(uuid.UUID); ok {
				operator = operatorID.String()[:8]
			}
		}

		log.Printf("[%s] %s %s | %d | %v | op=%s | %s",
			tag,
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			operator,
			c.ClientIP(),
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", tag, e.Err)
		}
	}
}
