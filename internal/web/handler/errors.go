package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/CareDesk-Admin/CareDesk-Admin/internal/fault"
)

// StatusFor maps a domain error to the HTTP status code it should surface as.
// Unknown errors are treated as storage-level failures.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, fault.ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, fault.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, fault.ErrValidation), errors.Is(err, fault.ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, fault.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail renders the shared error page with the status derived from err.
func Fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)

	return c.Status(status).Render("error", fiber.Map{
		"Status":  status,
		"Message": err.Error(),
	}, BaseLayout)
}
