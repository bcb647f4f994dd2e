// Package filter exposes the post stats content filter as a JSON endpoint,
// so another publishing platform can pass its article bodies through it.
package filter

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/poststats"
	"github.com/poststats/poststats/internal/web/handler"
)

// Path of the filter endpoint.
const Path = handler.RootPath + "api/v1/content/filter"

// Request is the filter request body. Single defaults to true.
// Content may be empty and is limited to 1 MiB.
type Request struct {
	Content string `json:"content" validate:"max=1048576"`
	Single  *bool  `json:"single"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Service is the filter handler service.
type Service struct {
	db        *gorm.DB
	renderer  *poststats.Renderer
	validator *validator.Validate
}

// Handler is the filter handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the filter handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.renderer = poststats.NewRenderer(cfg.Site.Language)
	s.validator = validator.New()

	app.Post(Path, s.Post)

	return nil
}

// Post filters the posted content with the stored display options.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if err := s.validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		fields := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			fields[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "validation failed", Fields: fields})
	}

	opts, err := options.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load post stats settings")

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load settings"})
	}

	single := req.Single == nil || *req.Single

	result, err := s.renderer.Filter(req.Content, opts, single)
	if err != nil {
		log.Error().Err(err).Msg("failed to filter content")

		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(result)
}
