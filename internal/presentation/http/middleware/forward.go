package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/infrastructure/upstream"
	"github.com/sangkips/temple-api/pkg/utils"
)

// ForwardMiddleware carries the caller's Authorization header and the
// request id into the request context so upstream calls can forward them.
// Must run after LoggerMiddleware.
func ForwardMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if auth := c.GetHeader("Authorization"); auth != "" {
			ctx = upstream.WithAuthorization(ctx, auth)
		}
		if requestID := c.GetString("request_id"); requestID != "" {
			ctx = upstream.WithRequestID(ctx, requestID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CallerKey identifies the caller without keeping its token: a short digest
// of the Authorization header, or the client IP when there is none.
func CallerKey(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return "tok:" + utils.ShortDigest(auth)
	}
	return "ip:" + c.ClientIP()
}
