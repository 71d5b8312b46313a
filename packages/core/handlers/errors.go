package handlers

import (
	"errors"
	"net/http"

	"core/rotation"
	"core/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is
// logged and reported as a 500 with the given fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrSessionClosed),
		errors.Is(err, services.ErrGameNotInProgress),
		errors.Is(err, rotation.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidShareCode),
		errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrInvalidCourts),
		errors.Is(err, rotation.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
	} else {
		message = err.Error()
	}
	c.JSON(status, gin.H{"error": message})
}
