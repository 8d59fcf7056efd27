package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"habitserver/internal/logger"
	"habitserver/internal/models/api_error"
	"habitserver/internal/utils/utils_handler"
)

func PanicRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"id", utils_handler.RequestID(c), "panic", err, "stack", string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": api_error.UNEXPECTED_ERROR_MESSAGE,
				})
			}
		}()

		c.Next()
	}
}
