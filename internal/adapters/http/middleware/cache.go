package middleware

import "github.com/gofiber/fiber/v2"

// NoCacheHeaders forbids caching. Every /auth response carries tokens or
// identity data, so the whole group uses it.
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}
