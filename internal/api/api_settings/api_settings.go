package api_settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/social"
	"habitserver/internal/utils/utils_handler"
)

func Get(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	view, err := svc.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func Update(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.SettingsUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	settings, err := svc.UpdateSettings(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateAccount(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.AccountUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := svc.UpdateAccount(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func ChangePassword(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.PasswordChange](c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := svc.ChangePassword(c.Request.Context(), userID, in); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func UpdatePrivacy(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.PrivacyUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	view, err := svc.UpdatePrivacy(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}
