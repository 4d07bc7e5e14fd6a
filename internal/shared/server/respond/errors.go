package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/telemetry"
)

const internalMessage = "Unexpected server error"

// Error converts err into a failure envelope. Anything outside the apperr
// taxonomy becomes a 500 with a generic message.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	message := internalMessage
	var fields []apperr.FieldError
	if e, ok := apperr.As(err); ok && status != http.StatusInternalServerError {
		message = e.Message
		fields = e.Fields
	}
	logFields := map[string]any{}
	if err != nil {
		logFields["error"] = err.Error()
	}
	Fail(c, status, message, fields, logFields)
}

// Fail writes a failure envelope with an explicit status and logs it. With no
// field errors the message itself becomes the single error entry.
func Fail(c *gin.Context, status int, message string, fields []apperr.FieldError, extra map[string]any) {
	if len(fields) == 0 {
		fields = []apperr.FieldError{{Message: message}}
	}
	logFields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		logFields["user_id"] = userID
	}
	for k, v := range extra {
		logFields[k] = v
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", logFields)
	} else {
		telemetry.Warn("http.error", logFields)
	}

	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrAuthFailed), errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
