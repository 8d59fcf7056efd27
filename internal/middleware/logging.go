package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"habitserver/internal/logger"
	"habitserver/internal/models/api_error"
	"habitserver/internal/utils/utils_handler"
)

// RequestIDProvider tags the request with a fresh id, echoed back in the
// X-Request-ID header.
func RequestIDProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set(utils_handler.CtxRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		logger.Debug("request",
			"id", requestID, "ip", c.ClientIP(), "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	}
}

// ErrorLogging writes one line per request and one per reported error.
// Unexpected errors are logged at error level with their cause.
func ErrorLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID := utils_handler.RequestID(c)
		status := c.Writer.Status()
		keyvals := []interface{}{
			"id", requestID,
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"latency", time.Since(start),
		}

		for _, e := range c.Errors {
			if api_error.StatusOf(e.Err) >= 500 {
				logger.Error("request failed", append(keyvals, "err", e.Err)...)
			} else {
				logger.Debug("request rejected", append(keyvals, "err", e.Err)...)
			}
		}

		if status >= 500 {
			logger.Warn("request", keyvals...)
		} else {
			logger.Info("request", keyvals...)
		}
	}
}
