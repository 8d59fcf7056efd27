// Package api_utility serves the pomodoro timer and reminder list.
package api_utility

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func PomodoroSettings(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	settings, err := svc.PomodoroSettings(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdatePomodoroSettings(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.PomodoroUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	settings, err := svc.UpdatePomodoroSettings(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func RecordSession(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.SessionInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	session, err := svc.RecordSession(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func Reminders(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	reminders, err := svc.ListReminders(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func NewReminder(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.ReminderInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	reminder, err := svc.CreateReminder(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func EditReminder(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	id, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	in, err := utils_handler.GetObj[social.ReminderUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	reminder, err := svc.UpdateReminder(c.Request.Context(), userID, id, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func DeleteReminder(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	id, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.DeleteReminder(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}
