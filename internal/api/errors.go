package api

import (
	"alcyxob/adaptive-coach/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondServiceError maps service errors to HTTP status codes.
// Anything unknown is logged and reported as a 500 without details.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidAdaptation),
		errors.Is(err, service.ErrProfileIncomplete):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrMediaNotAvailable):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrExerciseExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled service error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// queryDays reads the optional "days" query parameter. 0 means the server default.
func queryDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		abortWithError(c, http.StatusBadRequest, "days must be an integer between 1 and 365")
		return 0, false
	}
	return days, true
}
