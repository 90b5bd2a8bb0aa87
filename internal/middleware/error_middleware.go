package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// errorMapping ties an error kind to its status, code and fallback message
type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: specific kinds are wrapped together with general ones.
var errorMappings = []errorMapping{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrCapacityExceeded, http.StatusBadRequest, dto.ErrorCodeCapacityExceeded, "Capacity exceeded"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
}

// ResolveError returns the status, code and client message for err.
// Unclassified errors resolve to a generic 500 so storage details never leak.
func ResolveError(err error) (int, dto.ErrorCode, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, apperrors.Message(err, m.message)
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"
}

// HandleAPIError writes the error response for err
func HandleAPIError(c *gin.Context, err error) {
	status, code, message := ResolveError(err)
	logError(c, status, err)
	c.JSON(status, dto.NewErrorResponse(code, message))
}

// HandleMessageError writes err using the bare {"message": ...} body
func HandleMessageError(c *gin.Context, err error) {
	status, _, message := ResolveError(err)
	logError(c, status, err)
	c.JSON(status, dto.MessageResponse{Message: message})
}

func logError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		return
	}
	logger.Debug().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg("Request rejected")
}
