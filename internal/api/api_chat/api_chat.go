package api_chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func Rooms(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	rooms, err := svc.ListRoomsFor(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// OpenRoom returns the direct room with the target user, creating it when
// needed.
func OpenRoom(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.RoomInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	room, err := svc.GetOrCreateDirectRoom(c.Request.Context(), userID, in.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func Messages(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	roomID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	messages, err := svc.ListMessages(c.Request.Context(), userID, roomID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func Send(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	roomID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	in, err := utils_handler.GetObj[social.MessageInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	message, err := svc.SendMessage(c.Request.Context(), userID, roomID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
