package api_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const UNEXPECTED_ERROR_MESSAGE = "unexpected server error occurred"

type APIError struct {
	error
	httpStatus int
	message    string
}

func (e APIError) Unwrap() error {
	return e.error
}

func (e APIError) HTTPStatus() int {
	return e.httpStatus
}

// Message is the text shown to the client. It falls back to the wrapped
// error's text.
func (e APIError) Message() string {
	if e.message != "" {
		return e.message
	}
	return e.error.Error()
}

func New(e error, httpStatus int, message string) APIError {
	return APIError{
		error:      e,
		httpStatus: httpStatus,
		message:    message,
	}
}

func NewFromErr(e error, httpStatus int) APIError {
	return APIError{
		error:      e,
		httpStatus: httpStatus,
		message:    "",
	}
}

func NewFromStr(s string, httpStatus int) APIError {
	return APIError{
		error:      errors.New(s),
		httpStatus: httpStatus,
		message:    "",
	}
}

func Unauthenticated(msg string) APIError { return NewFromStr(msg, http.StatusUnauthorized) }
func Forbidden(msg string) APIError       { return NewFromStr(msg, http.StatusForbidden) }
func BadRequest(msg string) APIError      { return NewFromStr(msg, http.StatusBadRequest) }
func NotFound(msg string) APIError        { return NewFromStr(msg, http.StatusNotFound) }
func Conflict(msg string) APIError        { return NewFromStr(msg, http.StatusConflict) }

// Internal keeps the cause for logging while showing a generic message.
func Internal(cause error) APIError {
	return New(cause, http.StatusInternalServerError, UNEXPECTED_ERROR_MESSAGE)
}

// StatusOf returns the HTTP status err would be rendered with.
func StatusOf(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func ToResponse(c *gin.Context, e error) {
	var currentErr APIError

	if errors.As(e, &currentErr) && currentErr.HTTPStatus() < http.StatusInternalServerError {
		c.JSON(currentErr.HTTPStatus(), gin.H{
			"error": currentErr.Message()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": UNEXPECTED_ERROR_MESSAGE,
	})
}
