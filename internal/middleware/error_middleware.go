package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

// HandleAPIError is the single place where service errors become HTTP
// responses. Controllers pass every error here instead of picking status
// codes themselves.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 400
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidDateFormat),
		errors.Is(err, apperrors.ErrInvalidDNI),
		errors.Is(err, apperrors.ErrInvalidPhone),
		errors.Is(err, apperrors.ErrInvalidSex),
		errors.Is(err, apperrors.ErrInvalidLocation),
		errors.Is(err, apperrors.ErrTooManyArchivedFiles),
		errors.Is(err, apperrors.ErrTooManyRecipients),
		errors.Is(err, apperrors.ErrNoValidRecipients):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")

	// 403
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrUserFixed):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "The fixed user cannot be modified or deleted")
	case errors.Is(err, apperrors.ErrLastAdminRemaining):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "At least one active admin must remain")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// 404
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrShareNotFound),
		errors.Is(err, apperrors.ErrMotionNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	// 409
	case errors.Is(err, apperrors.ErrDNIAlreadyExists),
		errors.Is(err, apperrors.ErrMailAlreadyExists),
		errors.Is(err, apperrors.ErrShareAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
