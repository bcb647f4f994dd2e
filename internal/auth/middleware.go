package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/poststats/poststats/internal/web/session"
)

// sessionUserID returns the user id of the session cookie, 0 without a valid session.
func sessionUserID(c *fiber.Ctx) uint64 {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return 0
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return 0
	}

	return sessionData.User.ID
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUserID(c)
		if userID == 0 {
			log.Debug().Str("path", c.Path()).Msg("no valid session")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasPermission(userID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Str("permission", permission).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", userID).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// HasPermissionInContext checks if the current user in the Fiber context has a permission.
func HasPermissionInContext(c *fiber.Ctx, authService *Service, permission string) bool {
	userID := sessionUserID(c)
	if userID == 0 {
		return false
	}

	hasPermission, err := authService.HasPermission(userID, permission)

	return err == nil && hasPermission
}

// AddPermissionsToLocals is a Fiber middleware that adds user permissions to fiber.Locals.
// Templates use them to show admin links.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := sessionUserID(c)
		if userID == 0 {
			return c.Next()
		}

		permissions, err := authService.GetUserPermissions(userID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).
				Msg("Failed to get user permissions")

			return c.Next()
		}

		granted := make(map[string]bool, len(permissions))
		for _, p := range permissions {
			granted[p] = true
		}

		c.Locals("permissions", permissions)
		c.Locals("hasPermission", func(perm string) bool {
			return granted[perm]
		})

		return c.Next()
	}
}
