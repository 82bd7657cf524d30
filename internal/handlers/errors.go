package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"veloshop/internal/models"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrDuplicateModel):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrParse):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
