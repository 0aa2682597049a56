package middleware

import (
	"strings"

	"shopno-backend/internal/config"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/pkg/jwt"
	"shopno-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// sessionKey is the Locals slot holding the authenticated session.
const sessionKey = "session"

// AuthMiddleware validates the bearer token and stores the resulting
// session in the request context. Everything downstream reads the session
// explicitly; there is no per-request global user state.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(sessionKey, &domain.Session{
			UserID:      claims.UserID,
			Name:        claims.Name,
			Username:    claims.Username,
			Role:        domain.Role(claims.Role),
			Permissions: domain.NewPermissionSet(claims.Permissions...),
		})

		return c.Next()
	}
}

// GetSession returns the request's authenticated session, nil when the
// request never passed AuthMiddleware.
func GetSession(c *fiber.Ctx) *domain.Session {
	session, _ := c.Locals(sessionKey).(*domain.Session)
	return session
}

// RequireModule gates a route group on one module permission. Superadmins
// always pass; everyone else needs the module in their permission set.
func RequireModule(moduleID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !session.HasPermission(moduleID) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// SuperAdminOnly allows only the superadmin role.
func SuperAdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if session.Role != domain.RoleSuperAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}
