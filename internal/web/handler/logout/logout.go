// Package logout ends the session of the signed-in user.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/handler/login"
	"github.com/poststats/poststats/internal/web/session"
)

// Path is the logout path.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(session.CookieName); sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   s.cfg == nil || !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(login.Path)
}
