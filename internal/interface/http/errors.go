package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-platform/internal/domain/entity"
)

// statusFor is the single mapping from the closed domain error set to
// HTTP statuses. Anything outside the taxonomy maps to 500 with a
// generic message so internal detail never reaches a client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound, entity.ErrUserNotFound.Error()
	case errors.Is(err, entity.ErrUserAlreadyExists):
		return http.StatusConflict, entity.ErrUserAlreadyExists.Error()
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized, entity.ErrInvalidCredentials.Error()
	case errors.Is(err, entity.ErrPostNotFound):
		return http.StatusNotFound, entity.ErrPostNotFound.Error()
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden, entity.ErrForbidden.Error()
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest, entity.ErrValidation.Error()
	case errors.Is(err, entity.ErrDatabase),
		errors.Is(err, entity.ErrPasswordHash),
		errors.Is(err, entity.ErrToken):
		return http.StatusInternalServerError, "internal server error"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError writes the wire error shape {"error": message} and
// logs server-side failures with their real cause.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	c.JSON(status, gin.H{"error": message})
}
