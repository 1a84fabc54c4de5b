package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// NoStore marks responses non-cacheable. Applied to the content API so admin
// edits are visible on the next page load, not after a cache expiry.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
