package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
)

const (
	RequestIdKey    = "request_id"
	RequestIdHeader = "X-Request-ID"
)

// RequestLogger tags every request with an id, reusing the caller's
// X-Request-ID when present, and logs it once it is served.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		clientIP := c.ClientIP()
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set(RequestIdKey, requestId)
		c.Header(RequestIdHeader, requestId)

		c.Next()

		statusCode := c.Writer.Status()
		duration := time.Since(start)

		event := logs.Logger.Info()
		if statusCode >= 500 {
			event = logs.Logger.Error()
		}
		event.Str("request_id", requestId).
			Str("method", method).
			Str("path", path).
			Str("client_ip", clientIP).
			Int("status", statusCode).
			Dur("duration", duration).
			Msg("request log")
	}
}
