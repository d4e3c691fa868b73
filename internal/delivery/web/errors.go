package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/brainbuzz/internal/service"
)

const msgInternalError = "An unexpected error occurred. Please try again later."

var (
	errUnauthenticated = errors.New("authentication required")
	errForbidden       = errors.New("you do not have permission to perform this action")
	errInvalidID       = errors.New("invalid id")
	errInvalidBody     = errors.New("invalid request body")
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Details   string            `json:"details,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// statusFor maps an error to its HTTP status and client-facing message.
func statusFor(err error) (int, string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, errInvalidID),
		errors.Is(err, errInvalidBody),
		errors.Is(err, service.ErrCredentialsRequired),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidPercentage),
		errors.Is(err, service.ErrInvalidDuration):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrAccountLocked):
		return http.StatusLocked, "Account is temporarily locked. Please try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, "The request timed out"
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// respondError writes the error envelope and aborts the chain.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := statusFor(err)

	resp := ErrorResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		if h.devMode {
			resp.Details = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, resp)
}
