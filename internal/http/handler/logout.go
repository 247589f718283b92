package handler

import (
	"time"

	"backend-hospital/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Logout denylists the token until its natural expiry so it cannot be
// replayed.
func Logout(c *fiber.Ctx) error {
	jti := c.Locals("token_jti").(string)
	exp := c.Locals("token_exp").(time.Time)

	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Minute
	}

	if err := config.Redis.Set(config.Ctx, "denylist:"+jti, "1", ttl).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to revoke token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
