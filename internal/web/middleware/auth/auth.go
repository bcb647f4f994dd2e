package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/poststats/poststats/internal/db/models"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/handler/login"
	"github.com/poststats/poststats/internal/web/handler/logout"
	"github.com/poststats/poststats/internal/web/session"
)

// ProtectedPrefix is the path prefix that requires a signed-in user.
const ProtectedPrefix = "/admin"

// Middleware is a Fiber middleware that checks for user authentication.
func Middleware(c *fiber.Ctx) error {
	if IsLogoutPage(c) {
		return c.Next()
	}

	user, signedIn := CurrentUser(c)
	if signedIn {
		c.Locals("CurrentUser", user)
	}

	switch {
	case signedIn && IsLoginPage(c):
		return c.Redirect(handler.HomePath)
	case !signedIn && IsProtected(c):
		return c.Redirect(login.Path)
	}

	return c.Next()
}

// CurrentUser returns the user of the session cookie.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return models.User{}, false
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		return models.User{}, false
	}

	return sessData.User, sessData.User.ID > 0
}

// IsProtected checks if the current request needs a signed-in user.
func IsProtected(c *fiber.Ctx) bool {
	return hasPathPrefix(c, ProtectedPrefix)
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return hasPathPrefix(c, login.Path)
}

// IsLogoutPage checks if the current request is for the logout page.
func IsLogoutPage(c *fiber.Ctx) bool {
	return hasPathPrefix(c, logout.Path)
}

func hasPathPrefix(c *fiber.Ctx, prefix string) bool {
	p := strings.ToLower(c.Path())

	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
