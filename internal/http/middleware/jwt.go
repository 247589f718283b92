package middleware

import (
	"strings"
	"time"

	"backend-hospital/internal/config"

	"github.com/gofiber/fiber/v2"
)

func JWTAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization format",
			})
		}

		claims, err := config.ValidateToken(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		// Tokens revoked by logout sit in the Redis denylist until expiry
		revoked, err := config.Redis.Exists(config.Ctx, "denylist:"+claims.ID).Result()
		if err == nil && revoked > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been revoked",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("full_name", claims.FullName)
		c.Locals("role", claims.Role)
		c.Locals("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Locals("token_exp", claims.ExpiresAt.Time)
		} else {
			c.Locals("token_exp", time.Now().Add(config.TokenTTL))
		}

		return c.Next()
	}
}

func RoleAuth(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Locals("role").(string)

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not have access to this resource",
		})
	}
}
