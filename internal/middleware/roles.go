package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware handler that allows only users whose role
// matches one of the provided roles, responding 403 Forbidden otherwise.
//
// It accepts a variadic list so a route can admit several roles in one call:
//
//	api.Post("/games", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleScorekeeper), ...)
//
// RequireRole must run AFTER Auth, because Auth is what populates the
// "userRole" value in the request context.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role means Auth wasn't applied or failed silently — deny.
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}

		// Authenticated but not authorized for this action.
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
