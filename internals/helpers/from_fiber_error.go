package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError turns a service error (usually *fiber.Error) into the
// consistent JSON error envelope. Anything else falls back to 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
