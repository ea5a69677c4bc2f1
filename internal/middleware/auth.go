package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tripmate/internal/service/auth"
)

const (
	UserIDContextKey   = "user_id"
	UserNameContextKey = "user_name"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(UserIDContextKey, claims.UserID)
		c.Locals(UserNameContextKey, claims.Name)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals(UserIDContextKey).(int64)
	if !ok || userID <= 0 {
		return 0, Unauthorized("User not authenticated")
	}
	return userID, nil
}

func GetCurrentUserName(c *fiber.Ctx) string {
	name, _ := c.Locals(UserNameContextKey).(string)
	return name
}
