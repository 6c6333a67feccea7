package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/dto"
)

const (
	// IdempotencyKeyHeader lets clients retry stock mutations safely
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotencyKeyCtxKey = "idempotency_key"
	maxIdempotencyKeyLen = 128
)

// IdempotencyKey reads the Idempotency-Key header of a write request and
// stores it for the handler. Over-long keys are rejected.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key must be at most 128 characters", GetRequestID(c)))
			return
		}
		c.Set(idempotencyKeyCtxKey, key)
		c.Next()
	}
}

// GetIdempotencyKey returns the key stored by IdempotencyKey, or ""
func GetIdempotencyKey(c *gin.Context) string {
	return c.GetString(idempotencyKeyCtxKey)
}
