package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *zap.Logger
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

// Idempotency replays the stored response when a caller repeats a mutating
// request with the same Idempotency-Key. Only non-5xx responses are stored,
// so a failed upstream call can be retried. A key reused on another method
// or path is rejected with 422.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}
		callerKey := CallerKey(c)

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, callerKey)
		if err != nil {
			logger.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.Request.URL.Path
		if existing != nil && !existing.IsExpired() {
			if existing.Endpoint != endpoint {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			CallerKey:    callerKey,
			Endpoint:     endpoint,
			ResponseCode: c.Writer.Status(),
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}

		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			logger.Warn("failed to store idempotency key", zap.String("endpoint", ikey.Endpoint), zap.Error(err))
		}
	}
}
