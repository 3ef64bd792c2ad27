package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/apperr"
)

type HTTPError struct {
	Code         string      `json:"error_code"`
	Message      string      `json:"message"`
	ProtectedIDs []uuid.UUID `json:"protected_ids,omitempty"`
	Details      any         `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a business error to its HTTP shape. Unclassified errors
// become opaque 500s.
func FromError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case apperr.KindValidation, apperr.KindTimeZoneResolution:
		status = http.StatusBadRequest
	case apperr.KindConflict, apperr.KindProtectedResource:
		status = http.StatusConflict
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, HTTPError{
		Code:         e.Code,
		Message:      e.Message,
		ProtectedIDs: e.ProtectedIDs,
		Details:      e.Details,
	})
}
