package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/utils/response"
)

// MapServiceError translates domain sentinel errors into HTTP responses.
// Anything unrecognized is a storage or programming failure and surfaces as a
// plain 500 with no retry.
func MapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAccountBlocked):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrRecoveryMismatch):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		return response.ValidationError(c, err)
	default:
		return response.InternalServerError(c, "Operation failed")
	}
}
