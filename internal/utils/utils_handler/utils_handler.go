package utils_handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"habitserver/internal/models/api_error"
	"habitserver/internal/social"
)

const (
	CtxService   = "service"
	CtxUserID    = "UserID"
	CtxEmail     = "Email"
	CtxRequestID = "RequestID"
)

// GetReqCx returns the service and the authenticated caller. It must only be
// used behind middleware.Auth.
func GetReqCx(c *gin.Context) (*social.Service, uuid.UUID) {
	return GetService(c), c.MustGet(CtxUserID).(uuid.UUID)
}

func GetService(c *gin.Context) *social.Service {
	return c.MustGet(CtxService).(*social.Service)
}

// GetObj binds the JSON body into a T. Binding failures are reported as 400.
func GetObj[T any](c *gin.Context) (T, error) {
	var obj T
	if err := c.ShouldBindJSON(&obj); err != nil {
		return obj, api_error.New(err, http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return obj, nil
}

// ParseID reads a uuid path parameter.
func ParseID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, api_error.InvalidID
	}
	return id, nil
}

func RequestID(c *gin.Context) string {
	return c.GetString(CtxRequestID)
}
