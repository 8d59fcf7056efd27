package api_dev

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/utils/utils_handler"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func AuthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "You are authorised.",
		"userID":  c.MustGet(utils_handler.CtxUserID),
	})
}
