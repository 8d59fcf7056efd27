package middleware

import (
	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func ServiceProvider(svc *social.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils_handler.CtxService, svc)
		c.Next()
	}
}
