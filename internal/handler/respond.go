package handler

import (
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to its HTTP status. Errors outside the
// taxonomy are infrastructure failures and surface as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnknown {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(apperr.HTTPStatus(kind)).JSON(fiber.Map{"error": err.Error()})
}
