// Package api wires the HTTP routes onto a gin engine.
package api

import (
	"github.com/gin-gonic/gin"

	"habitserver/internal/api/api_challenge"
	"habitserver/internal/api/api_chat"
	"habitserver/internal/api/api_comment"
	"habitserver/internal/api/api_dev"
	"habitserver/internal/api/api_files"
	"habitserver/internal/api/api_friend"
	"habitserver/internal/api/api_habit"
	"habitserver/internal/api/api_notification"
	"habitserver/internal/api/api_post"
	"habitserver/internal/api/api_settings"
	"habitserver/internal/api/api_user"
	"habitserver/internal/api/api_utility"
	"habitserver/internal/middleware"
	"habitserver/internal/social"
	"habitserver/internal/utils/utils_auth"
)

type Options struct {
	Service        *social.Service
	Issuer         *utils_auth.TokenIssuer
	CORSOrigins    []string
	UploadDir      string
	MaxUploadBytes int64
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	r.Use(
		middleware.RequestIDProvider(),
		middleware.ErrorLogging(),
		middleware.PanicRecovery(),
		middleware.CORS(opts.CORSOrigins),
		middleware.ErrorHandler(),
		middleware.ServiceProvider(opts.Service),
	)

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	auth := middleware.Auth(opts.Issuer)

	v := r.Group("/api")
	v.GET("/health", api_dev.HealthCheck)
	v.GET("/authcheck", auth, api_dev.AuthCheck)
	{
		g := v.Group("/auth")
		g.POST("/signup", api_user.Signup(opts.Issuer))
		g.POST("/login", api_user.Login(opts.Issuer))
		g.GET("/me", auth, api_user.Me)
	}
	{
		g := v.Group("/habits", auth)
		g.GET("", api_habit.List)
		g.POST("", api_habit.New)
		g.POST("/activity", api_habit.SaveActivity)
		g.PUT("/:id", api_habit.Edit)
		g.DELETE("/:id", api_habit.Delete)
	}
	v.GET("/analytics/summary", auth, api_habit.Summary)
	{
		g := v.Group("/friends", auth)
		g.GET("/search", api_friend.Search)
		g.POST("/request", api_friend.Request)
		g.GET("/requests", api_friend.Incoming)
		g.PUT("/respond", api_friend.Respond)
		g.GET("/list", api_friend.List)
		g.POST("/block", api_friend.Block)
		g.POST("/unblock", api_friend.Unblock)
		g.GET("/blocked", api_friend.Blocked)
		g.GET("/:id", api_user.ViewProfile("id"))
	}
	{
		g := v.Group("/chat", auth)
		g.GET("/rooms", api_chat.Rooms)
		g.POST("/rooms", api_chat.OpenRoom)
		g.GET("/rooms/:id/messages", api_chat.Messages)
		g.POST("/rooms/:id/messages", api_chat.Send)
	}
	{
		g := v.Group("/posts", auth)
		g.GET("/feed", api_post.Feed)
		g.POST("", api_post.New)
		g.DELETE("/:id", api_post.Delete)
		g.POST("/:id/like", api_post.Like)
		g.POST("/:id/comment", api_comment.New)
	}
	{
		g := v.Group("/challenges", auth)
		g.GET("", api_challenge.List)
		g.POST("/:id/join", api_challenge.Join)
		g.POST("/:id/leave", api_challenge.Leave)
	}
	{
		g := v.Group("/notifications", auth)
		g.GET("", api_notification.List)
		g.PUT("/read-all", api_notification.MarkAllRead)
		g.PUT("/:id/read", api_notification.MarkRead)
	}
	{
		g := v.Group("/profile", auth)
		g.GET("", api_user.OwnProfile)
		g.PUT("", api_user.UpdateProfile)
		g.GET("/badges", api_user.Badges)
		g.POST("/avatar", api_files.UploadAvatar("avatar"))
		g.DELETE("/avatar", api_files.DeleteAvatar)
		g.GET("/:userId", api_user.ViewProfile("userId"))
	}
	{
		g := v.Group("/settings", auth)
		g.GET("", api_settings.Get)
		g.PUT("", api_settings.Update)
		g.PUT("/profile", api_settings.UpdateAccount)
		g.PUT("/password", api_settings.ChangePassword)
		g.PUT("/privacy", api_settings.UpdatePrivacy)
	}
	{
		g := v.Group("/pomodoro", auth)
		g.GET("/settings", api_utility.PomodoroSettings)
		g.PUT("/settings", api_utility.UpdatePomodoroSettings)
		g.POST("/sessions", api_utility.RecordSession)
	}
	{
		g := v.Group("/reminders", auth)
		g.GET("", api_utility.Reminders)
		g.POST("", api_utility.NewReminder)
		g.PUT("/:id", api_utility.EditReminder)
		g.DELETE("/:id", api_utility.DeleteReminder)
	}

	return r
}
