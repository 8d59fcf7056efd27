package api_habit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func List(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	habits, err := svc.ListHabits(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func New(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.HabitInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	habit, err := svc.CreateHabit(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func Edit(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	habitID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	in, err := utils_handler.GetObj[social.HabitUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	habit, err := svc.UpdateHabit(c.Request.Context(), userID, habitID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func Delete(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	habitID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.DeleteHabit(c.Request.Context(), userID, habitID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted"})
}

func SaveActivity(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.ActivityInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	activity, err := svc.SaveActivity(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func Summary(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	summary, err := svc.AnalyticsSummary(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
