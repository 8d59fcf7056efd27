package api_challenge

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/utils/utils_handler"
)

func List(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	challenges, err := svc.ListChallenges(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

func Join(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	challengeID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	challenge, err := svc.JoinChallenge(c.Request.Context(), userID, challengeID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Joined successfully",
		"challenge": challenge,
		"habitId":   challenge.HabitID,
	})
}

func Leave(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	challengeID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	challenge, err := svc.LeaveChallenge(c.Request.Context(), userID, challengeID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left successfully", "challenge": challenge})
}
