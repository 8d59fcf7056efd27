package middleware

import (
	"github.com/gin-gonic/gin"

	"habitserver/internal/models/api_error"
)

// ErrorHandler renders the first error a handler reported.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			api_error.ToResponse(c, c.Errors[0].Err)
		}
	}
}
