package api_comment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func New(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	postID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	in, err := utils_handler.GetObj[social.CommentInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	comment, err := svc.AddComment(c.Request.Context(), userID, postID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
