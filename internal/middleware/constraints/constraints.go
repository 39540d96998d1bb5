package constraints

import (
	"github.com/gofiber/fiber/v2"
)

// RequireLength ensures a path parameter has exactly n characters.
// Otherwise onMismatch answers the request and the handler is never called.
func RequireLength(param string, n int, onMismatch fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Params(param)
		if value == "" {
			return c.Next()
		}
		if len(value) != n {
			return onMismatch(c)
		}
		return c.Next()
	}
}
