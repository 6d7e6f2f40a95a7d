package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jobtrackr/jobtrackr/internal/util"
)

// respondError converts a typed error into the standard error envelope. Form
// endpoints surface the message inline; nothing here retries.
func respondError(c *fiber.Ctx, err error) error {
	var (
		authErr       *util.AuthError
		validationErr *util.ValidationError
		notFoundErr   *util.NotFoundError
		persistErr    *util.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: validationErr.Message,
		})
	case errors.As(err, &authErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: authErr.Message,
		})
	case errors.As(err, &notFoundErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: notFoundErr.Error(),
		})
	case errors.As(err, &persistErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: persistErr.Error(),
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Something went wrong",
		}, err)
	}
}
