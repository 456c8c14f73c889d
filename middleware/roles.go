package middleware

import (
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that permits only the given role. It must
// run after JWTMiddleware, which puts the decoded role in locals.
func RequireRole(required models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User role cannot be verified, please try again!",
			})
		}

		if role != required {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "This is a protected route for " + string(required) + " only!",
			})
		}

		return c.Next()
	}
}

func IsStudent(c *fiber.Ctx) error {
	return RequireRole(models.RoleStudent)(c)
}

func IsInstructor(c *fiber.Ctx) error {
	return RequireRole(models.RoleInstructor)(c)
}

func IsAdmin(c *fiber.Ctx) error {
	return RequireRole(models.RoleAdmin)(c)
}
