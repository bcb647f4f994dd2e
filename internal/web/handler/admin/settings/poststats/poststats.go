// Package poststats serves the post stats settings screen.
package poststats

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/controller/options"
	domain "github.com/poststats/poststats/internal/poststats"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/navigation"
)

const (
	// Path is the path to the post stats settings page.
	Path = handler.RootPath + "admin/settings/post-stats"

	// ResetPath restores the default options.
	ResetPath = Path + "/reset"

	// TemplateName is the name of the post stats settings template.
	TemplateName = "admin/settings/post-stats"

	// SavedMessage is shown after a successful save.
	SavedMessage = "Settings saved."

	pageTitle = "Post stats"
	pageID    = "post-stats"
)

// FieldView is a registered field with its current value.
type FieldView struct {
	options.Field
	Value   string
	Checked bool
}

// Service is the post stats settings handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the post stats settings handler.
var Handler = Service{}

// Init initializes the post stats settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	requireSettings := auth.RequirePermission(authService, auth.PermAdminSettings)

	app.Get(Path, requireSettings, s.Get)
	app.Post(Path, requireSettings, s.Post)
	app.Post(ResetPath, requireSettings, s.Reset)
}

// Get renders the settings form with the stored options.
func (s *Service) Get(c *fiber.Ctx) error {
	if s.db == nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	opts, err := options.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load post stats settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	return s.render(c, opts, fiber.Map{
		"Success": c.Query("saved") != "",
	})
}

// Post stores the submitted form. A rejected location is reported while the
// other fields are saved.
func (s *Service) Post(c *fiber.Ctx) error {
	form := options.Form{}
	if err := c.BodyParser(&form); err != nil {
		log.Error().Err(err).Msg("failed to parse post stats settings form")

		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	result, err := options.Save(s.db, form)
	if err != nil {
		log.Error().Err(err).Msg("failed to save post stats settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save settings")
	}

	if len(result.Errors) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).Render(TemplateName, s.data(result.Options, fiber.Map{
			"Errors": result.Errors,
		}), handler.BaseLayout)
	}

	log.Info().
		Str("location", result.Options.Location.String()).
		Bool("words", result.Options.ShowWordCount).
		Bool("characters", result.Options.ShowCharCount).
		Bool("reading_time", result.Options.ShowReadingTime).
		Msg("post stats settings saved")

	return s.render(c, result.Options, fiber.Map{
		"Success": true,
	})
}

// Reset removes the stored options and redirects back to the form.
func (s *Service) Reset(c *fiber.Ctx) error {
	if err := options.Reset(s.db); err != nil {
		log.Error().Err(err).Msg("failed to reset post stats settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to reset settings")
	}

	log.Info().Msg("post stats settings reset to defaults")

	return c.Redirect(Path + "?saved=1")
}

func (s *Service) render(c *fiber.Ctx, opts domain.Options, extra fiber.Map) error {
	return c.Render(TemplateName, s.data(opts, extra), handler.BaseLayout)
}

func (s *Service) data(opts domain.Options, extra fiber.Map) fiber.Map {
	data := fiber.Map{
		"Fields":       FieldViews(opts),
		"Navigation":   navigation.ForAdmin(pageTitle, pageID, Path),
		"ResetPath":    ResetPath,
		"SavedMessage": SavedMessage,
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

// FieldViews pairs the registered fields with the values of opts.
func FieldViews(opts domain.Options) []FieldView {
	values := options.Values(opts)
	fields := options.Fields()

	views := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		v := values[f.Key]
		views = append(views, FieldView{
			Field:   f,
			Value:   v,
			Checked: f.Kind == options.FieldCheckbox && v == "1",
		})
	}

	return views
}
