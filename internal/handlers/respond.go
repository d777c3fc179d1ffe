package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coursebay/lms_backend/internal/apperrors"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respond writes the success envelope. Extra payload keys are merged next to
// success and message.
func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError maps service errors onto HTTP statuses and writes the failure
// envelope. Unrecognized errors become opaque 500s so internals never leak.
func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Request failed", slog.String("error", err.Error()), slog.String("path", c.FullPath()))
		message = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidSecret):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondBindError reports a malformed or invalid request body.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
}

// requireUserID pulls the authenticated user id set by the auth middleware,
// writing the 401 envelope when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
	}
	return userID, ok
}
