package middleware

import (
	"strings"

	"github.com/codewithlokesh/intrvu-backend/internal/config"
	"github.com/codewithlokesh/intrvu-backend/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the fiber.Ctx locals key holding the authenticated user's id.
const UserIDKey = "userID"

// RequireAuth validates the Bearer token and stores the caller's user id in
// locals. Requests without a resolvable identity fail closed before any
// handler runs.
func RequireAuth(cfg *config.AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized: User not logged in",
			})
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized: User not logged in",
			}, err)
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "Unauthorized: User ID missing in session",
			})
		}

		c.Locals(UserIDKey, sub)
		return c.Next()
	}
}

// UserID returns the authenticated user's id from locals, or "".
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}
