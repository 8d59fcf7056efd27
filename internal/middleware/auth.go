package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"habitserver/internal/models/api_error"
	"habitserver/internal/utils/utils_auth"
	"habitserver/internal/utils/utils_handler"
)

// Auth requires a valid bearer token and stores the caller's id and email on
// the context.
func Auth(issuer *utils_auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Error(api_error.MissingAuthHeader)
			c.Abort()
			return
		}

		scheme, accessToken, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(accessToken) == "" {
			c.Error(api_error.MissingAuthHeader)
			c.Abort()
			return
		}

		claims, err := issuer.ParseAccessToken(strings.TrimSpace(accessToken))
		if err != nil {
			c.Error(api_error.InvalidToken)
			c.Abort()
			return
		}

		c.Set(utils_handler.CtxUserID, claims.UserID)
		c.Set(utils_handler.CtxEmail, claims.Email)
		c.Next()
	}
}
