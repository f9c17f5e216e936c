// Package middleware contains HTTP middleware for the scoreboard API: bearer-token
// authentication and role checks for the routes that mutate game state.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/courtside/scoreboard/internal/config"
)

// Role names carried in the token's "role" claim.
// Admins can do everything including team/player CRUD; scorekeepers run the
// console during a game; viewers can only read.
const (
	RoleAdmin       = "admin"
	RoleScorekeeper = "scorekeeper"
	RoleViewer      = "viewer"
)

// Claims is the payload we expect inside a scoreboard token: the standard JWT
// fields plus a role claim issued by whoever provisions console credentials.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Auth returns the authentication middleware. Tokens are HMAC-signed JWTs
// verified against cfg.JWTSecret; the verified role lands in c.Locals("userRole")
// for RequireRole to check downstream.
//
// When no JWT_SECRET is configured the middleware passes every request through
// as an admin. That keeps a local scoreboard — one laptop on a gym network —
// usable with zero setup; deployments that face the internet set the secret.
func Auth(cfg *config.Config) fiber.Handler {
	if cfg.JWTSecret == "" {
		return func(c *fiber.Ctx) error {
			c.Locals("userRole", RoleAdmin)
			return c.Next()
		}
	}

	secret := []byte(cfg.JWTSecret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is acceptable; refusing other methods blocks the classic
			// "alg":"none" and RSA-key-confusion forgeries.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		role := claims.Role
		if role != RoleAdmin && role != RoleScorekeeper {
			// Unknown or empty roles get least privilege.
			role = RoleViewer
		}
		c.Locals("userRole", role)

		return c.Next()
	}
}
