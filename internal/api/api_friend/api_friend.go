package api_friend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func Search(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.Error(api_error.BadRequest("Username query required"))
		return
	}

	users, err := svc.SearchUsers(c.Request.Context(), userID, username)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func Request(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.FriendRequestInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	friendship, err := svc.SendFriendRequest(c.Request.Context(), userID, in.Username)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "friendship": friendship})
}

func Incoming(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	requests, err := svc.IncomingRequests(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func Respond(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.RespondInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	friendship, err := svc.RespondToRequest(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}

	verb := "rejected"
	if friendship.Status == models.FriendshipAccepted {
		verb = "accepted"
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Request %s", verb), "friendship": friendship})
}

func List(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	friends, err := svc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func Block(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.TargetInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.Block(c.Request.Context(), userID, in.UserID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func Unblock(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.TargetInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.Unblock(c.Request.Context(), userID, in.UserID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

func Blocked(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	users, err := svc.ListBlocked(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}
