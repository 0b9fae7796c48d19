package handlers

import (
	"strings"

	"mediarate-backend/internal/services"
	"mediarate-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const localsUserIDKey = "userID"

// RequireAuth resolves the bearer token to a user and stores the user id
// in the request context. Unknown or missing tokens end the request with
// 401.
func RequireAuth(userService services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing bearer token")
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing bearer token")
		}

		user := userService.GetUserByToken(c.UserContext(), token)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(localsUserIDKey, user.ID)
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or 0 when the request
// did not pass RequireAuth.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(localsUserIDKey).(uint); ok {
		return id
	}
	return 0
}
