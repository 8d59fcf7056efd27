package api_user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habitserver/internal/models"
	"habitserver/internal/social"
	"habitserver/internal/utils/utils_auth"
	"habitserver/internal/utils/utils_handler"
)

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func Signup(issuer *utils_auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := utils_handler.GetService(c)

		in, err := utils_handler.GetObj[social.SignupInput](c)
		if err != nil {
			c.Error(err)
			return
		}

		user, err := svc.Signup(c.Request.Context(), in)
		if err != nil {
			c.Error(err)
			return
		}

		token, err := issuer.GenerateAccessToken(user.ID, user.Email)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
	}
}

func Login(issuer *utils_auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := utils_handler.GetService(c)

		in, err := utils_handler.GetObj[social.LoginInput](c)
		if err != nil {
			c.Error(err)
			return
		}

		user, err := svc.Login(c.Request.Context(), in)
		if err != nil {
			c.Error(err)
			return
		}

		token, err := issuer.GenerateAccessToken(user.ID, user.Email)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, authResponse{Token: token, User: user})
	}
}

func Me(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	user, err := svc.Me(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func OwnProfile(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	profile, err := svc.OwnProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ViewProfile serves both /friends/:id and /profile/:userId.
func ViewProfile(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, userID := utils_handler.GetReqCx(c)

		targetID, err := utils_handler.ParseID(c, param)
		if err != nil {
			c.Error(err)
			return
		}

		profile, err := svc.ViewProfile(c.Request.Context(), userID, targetID)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func UpdateProfile(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	in, err := utils_handler.GetObj[social.ProfileUpdate](c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := svc.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func Badges(c *gin.Context) {
	svc, userID := utils_handler.GetReqCx(c)

	badges, err := svc.ListBadges(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, badges)
}
