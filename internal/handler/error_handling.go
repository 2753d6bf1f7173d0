package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

// handleServiceError maps service-layer sentinel errors onto HTTP statuses
// and the standard error body. Unknown errors become opaque 500s.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	var status int
	var body models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		status = http.StatusBadRequest
		body = models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body = models.ErrorResponse{Code: models.ErrCodeWrongCredentials, Message: "invalid username or password"}
	case errors.Is(err, models.ErrTokenExpired):
		status = http.StatusUnauthorized
		body = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "token has expired"}
	case errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenNotFound),
		errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
		body = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "authentication required"}
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
		body = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "operation not allowed"}
	case errors.Is(err, models.ErrUserAlreadyExists):
		status = http.StatusConflict
		body = models.ErrorResponse{Code: models.ErrCodeDuplicateUser, Message: "username is already taken"}
	case errors.Is(err, models.ErrEmailAlreadyExists):
		status = http.StatusConflict
		body = models.ErrorResponse{Code: models.ErrCodeDuplicateEmail, Message: "email is already registered"}
	case errors.Is(err, models.ErrUserNotFound):
		status = http.StatusNotFound
		body = models.ErrorResponse{Code: models.ErrCodeUserNotFound, Message: "user not found"}
	case errors.Is(err, models.ErrConceptNotFound),
		errors.Is(err, models.ErrFavoriteNotFound),
		errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		body = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "resource not found"}
	case errors.Is(err, models.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
		body = models.ErrorResponse{Code: models.ErrCodeQuotaExceeded, Message: "daily generation limit reached"}
	default:
		h.logger.Error("Unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
		status = http.StatusInternalServerError
		body = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "internal server error"}
	}

	countHTTPError(body.Code)
	c.AbortWithStatusJSON(status, body)
}

// bindingError reports a gin binding failure as a validation error.
func (h *Handler) bindingError(c *gin.Context, err error) {
	countHTTPError(models.ErrCodeValidation)
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
		Code:    models.ErrCodeValidation,
		Message: err.Error(),
	})
}
