package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/pkg/apperrors"
	"github.com/hassy/readcycle/internal/pkg/logger"
)

type errorMapping struct {
	status int
	code   string
}

var errorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{apperrors.ErrInvalidCredentials, errorMapping{http.StatusBadRequest, dto.CodeInvalidCredentials}},
	{apperrors.ErrInvalidOTP, errorMapping{http.StatusBadRequest, dto.CodeInvalidOTP}},
	{apperrors.ErrOTPExpired, errorMapping{http.StatusBadRequest, dto.CodeOTPExpired}},
	{apperrors.ErrInvalidResetToken, errorMapping{http.StatusBadRequest, dto.CodeInvalidResetToken}},
	{apperrors.ErrEmptyMessage, errorMapping{http.StatusBadRequest, dto.CodeValidationFailed}},
	{apperrors.ErrInvalidStatus, errorMapping{http.StatusBadRequest, dto.CodeInvalidStatus}},
	{apperrors.ErrInvalidListing, errorMapping{http.StatusBadRequest, dto.CodeValidationFailed}},
	{apperrors.ErrSelfConversation, errorMapping{http.StatusBadRequest, dto.CodeSelfConversation}},
	{apperrors.ErrValidationFailed, errorMapping{http.StatusBadRequest, dto.CodeValidationFailed}},
	{apperrors.ErrUnauthorized, errorMapping{http.StatusUnauthorized, dto.CodeUnauthorized}},
	{apperrors.ErrInvalidToken, errorMapping{http.StatusForbidden, dto.CodeForbidden}},
	{apperrors.ErrForbidden, errorMapping{http.StatusForbidden, dto.CodeForbidden}},
	{apperrors.ErrNotBookOwner, errorMapping{http.StatusForbidden, dto.CodeNotBookOwner}},
	{apperrors.ErrNotParticipant, errorMapping{http.StatusForbidden, dto.CodeNotParticipant}},
	{apperrors.ErrUserNotFound, errorMapping{http.StatusNotFound, dto.CodeResourceNotFound}},
	{apperrors.ErrBookNotFound, errorMapping{http.StatusNotFound, dto.CodeBookNotFound}},
	{apperrors.ErrConversationNotFound, errorMapping{http.StatusNotFound, dto.CodeConversationNotFound}},
	{apperrors.ErrNotificationNotFound, errorMapping{http.StatusNotFound, dto.CodeNotificationNotFound}},
	{apperrors.ErrResourceNotFound, errorMapping{http.StatusNotFound, dto.CodeResourceNotFound}},
	{apperrors.ErrEmailNotVerified, errorMapping{http.StatusForbidden, dto.CodeEmailNotVerified}},
	{apperrors.ErrEmailAlreadyExists, errorMapping{http.StatusConflict, dto.CodeEmailExists}},
}

// HandleAPIError maps an error onto the JSON failure envelope. Binding
// errors from gin's validator become 400s; unknown errors become a
// logged 500 with a generic body.
func HandleAPIError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.CodeValidationFailed, "Validation failed", validationDetails(verrs)))
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.mapping.status, dto.NewErrorResponse(m.mapping.code, m.err.Error(), nil))
			return
		}
	}

	logger.Error().Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.CodeInternalError, "Internal server error", nil))
}

func validationDetails(verrs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

// RequestLogger logs one line per request at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("Request")
	}
}
