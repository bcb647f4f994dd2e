// Package login serves the sign-in form of the admin screens.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the login page template.
	TemplateName = "login"
)

// Form is the submitted login form.
type Form struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	localAuth *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("failed to parse login form")
		return s.renderError(c, ErrInvalidFormData)
	}

	user, err := s.localAuth.Authenticate(form.Username, form.Password)
	if err != nil {
		log.Info().Err(err).Str("username", form.Username).Msg("login failed")
		return s.renderError(c, ErrInvalidCredentials)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.renderError(c, ErrInternalServerError)
	}

	userSession := &session.Data{
		User: *user,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.renderError(c, ErrInternalServerError)
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.Redirect(handler.HomePath)
}

func (s *Service) renderError(c *fiber.Ctx, err error) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
		"error": err.Error(),
	})
}
