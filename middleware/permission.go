package middleware

import (
	"dormaid/models"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that loads the authenticated user and lets
// the request through only if its role is one of roles. The role is read from
// the store on every request, never from the token or the body. The loaded
// user is stored under c.Locals("user").
func RequireRole(db *gorm.DB, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		err := db.WithContext(c.UserContext()).Where("id = ?", userID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions", nil)
		}

		if !allowed[user.Role] {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource", nil)
		}

		c.Locals("user", &user)
		c.Locals("userRole", user.Role)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by RequireRole.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals("user").(*models.User)
	return u, ok
}
