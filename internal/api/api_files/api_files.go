package api_files

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/models/api_error"
	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

// UploadAvatar reads the multipart file under field and makes it the caller's
// avatar.
func UploadAvatar(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, userID := utils_handler.GetReqCx(c)

		file, err := c.FormFile(field)
		if err != nil {
			c.Error(api_error.New(err, http.StatusBadRequest, "No file uploaded"))
			return
		}

		src, err := file.Open()
		if err != nil {
			c.Error(err)
			return
		}
		defer src.Close()

		user, err := svc.SetAvatar(c.Request.Context(), userID, social.AvatarUpload{
			Body:        src,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
		})
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func DeleteAvatar(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	if err := svc.DeleteAvatar(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avatar removed"})
}
