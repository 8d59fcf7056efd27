package api_post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func Feed(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	posts, err := svc.FeedFor(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func New(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.PostInput](c)
	if err != nil {
		c.Error(err)
		return
	}

	post, err := svc.CreatePost(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func Delete(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	postID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func Like(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	postID, err := utils_handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	res, err := svc.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}
