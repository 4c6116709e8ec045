// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/medialicense-backend/internal/services"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

// respondServiceError maps the services error taxonomy to HTTP responses.
// Unknown errors become a 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	var invalidTransition *services.InvalidTransitionError
	switch {
	case errors.Is(err, services.ErrMovieNotFound):
		utils.NotFoundResponse(c, "Movie")
	case errors.Is(err, services.ErrSceneNotFound):
		utils.NotFoundResponse(c, "Scene")
	case errors.Is(err, services.ErrSongNotFound):
		utils.NotFoundResponse(c, "Song")
	case errors.Is(err, services.ErrTrackNotFound):
		utils.NotFoundResponse(c, "Track")
	case errors.Is(err, services.ErrLicenseNotFound):
		utils.NotFoundResponse(c, "License")
	case errors.Is(err, services.ErrSongInUse):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatusValue):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidTimeRange):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.As(err, &invalidTransition):
		utils.UnprocessableResponse(c, invalidTransition.Error(), gin.H{
			"from":      invalidTransition.From,
			"requested": invalidTransition.Requested,
			"allowed":   invalidTransition.Allowed,
		})
	default:
		if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.InternalErrorResponse(c, "")
	}
}

// uuidParam parses a UUID path parameter, writing a 400 on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name+" parameter", nil)
		return uuid.Nil, false
	}
	return id, true
}
