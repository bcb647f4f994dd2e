// Package articles exposes article import as a JSON endpoint.
package articles

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/controller/article"
	"github.com/poststats/poststats/internal/db/models"
	"github.com/poststats/poststats/internal/fetch"
	"github.com/poststats/poststats/internal/web/handler"
)

// Path of the import endpoint.
const Path = handler.RootPath + "api/v1/articles"

// Request is an article to import. Content is fetched from URL when empty.
type Request struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"   validate:"max=255"`
	Content string `json:"content" validate:"required_without=URL,max=1048576"`
	URL     string `json:"url"     validate:"omitempty,url"`
}

// Response describes the stored article.
type Response struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Service is the article import handler service.
type Service struct {
	db        *gorm.DB
	fetcher   *fetch.Fetcher
	validator *validator.Validate
}

// Handler is the article import handler.
var Handler = Service{}

// Init initializes the import handler. fetcher may be nil for the default one.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service,
	fetcher *fetch.Fetcher) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if fetcher == nil {
		fetcher = fetch.New()
	}

	s.db = db
	s.fetcher = fetcher
	s.validator = validator.New()

	app.Post(Path, auth.RequirePermission(authService, auth.PermArticleImport), s.Post)

	return nil
}

// Post stores the posted article, replacing the article with the same slug.
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

	if req.Content == "" {
		fetched, err := s.fetcher.Article(c.UserContext(), req.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", req.URL).Msg("failed to fetch article")

			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: err.Error()})
		}

		req.Content = fetched.Content
		if req.Title == "" {
			req.Title = fetched.Title
		}
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Slug == "" {
		req.Slug = article.Slugify(req.Title)
	}

	a := &models.Article{Slug: req.Slug, Title: req.Title, Content: req.Content}

	err := article.Save(s.db, a)

	switch {
	case errors.Is(err, article.ErrInvalidSlug), errors.Is(err, article.ErrTitleEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case err != nil:
		log.Error().Err(err).Str("slug", a.Slug).Msg("failed to store article")

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store article"})
	}

	log.Info().Str("slug", a.Slug).Msg("article imported")

	return c.Status(fiber.StatusCreated).JSON(Response{
		Slug:  a.Slug,
		Title: a.Title,
		URL:   handler.HomePath + "/" + a.Slug,
	})
}
