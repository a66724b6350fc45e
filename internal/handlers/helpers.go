package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/validator"
)

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// resolveUserID picks the user a request acts for. An authenticated request
// acts for the token's user and may not name anyone else; otherwise the
// claimed id is trusted.
func resolveUserID(c *gin.Context, claimed uint) (uint, error) {
	if authID, ok := middleware.AuthenticatedUserID(c); ok {
		if claimed != 0 && claimed != authID {
			return 0, apperrors.ErrForbidden
		}
		return authID, nil
	}
	if claimed == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}
	return claimed, nil
}

// pathUserID resolves the :user_id path parameter against the caller.
func pathUserID(c *gin.Context) (uint, error) {
	id, err := parsePathID(c, "user_id")
	if err != nil {
		return 0, err
	}
	return resolveUserID(c, id)
}

// ownerScope is the user id writes are restricted to, or 0 when the request
// is not authenticated.
func ownerScope(c *gin.Context) uint {
	id, _ := middleware.AuthenticatedUserID(c)
	return id
}

// parseFlexibleTime parses a YYYY-MM-DD date or RFC3339 timestamp.
func parseFlexibleTime(raw string, loc *time.Location) (time.Time, error) {
	t, _, err := validator.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date "+strconv.Quote(raw)+", expected YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

// parseEndOfRange parses an inclusive upper bound. A bare date covers the
// whole day.
func parseEndOfRange(raw string, loc *time.Location) (time.Time, error) {
	t, bare, err := validator.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date "+strconv.Quote(raw)+", expected YYYY-MM-DD or RFC3339")
	}
	if bare {
		t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return t, nil
}

// bindingError turns a gin binding failure into a validation error.
func bindingError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. Errors that are
// not AppErrors are logged and reported as a generic internal error.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Internal != nil {
		logger.Get().Errorw("request failed",
			"request_id", middleware.RequestID(c),
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
	c.JSON(appErr.StatusCode, appErr.Body())
}
