package api_notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/utils/utils_handler"
)

func List(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	notifications, err := svc.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func MarkRead(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	id, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.MarkNotificationRead(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func MarkAllRead(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	n, err := svc.MarkAllNotificationsRead(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}
