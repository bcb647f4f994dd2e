// Package article serves the article list and the single article view.
// Only the single view passes the content through the post stats filter.
package article

import (
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/config"
	controller "github.com/poststats/poststats/internal/db/controller/article"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/poststats"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/navigation"
)

const (
	// Path is the article list path.
	Path = handler.HomePath

	// ListTemplate renders the article list.
	ListTemplate = "articles/list"
	// ShowTemplate renders a single article.
	ShowTemplate = "articles/show"
)

// Service is the article handler service.
type Service struct {
	cfg      *config.Config
	db       *gorm.DB
	renderer *poststats.Renderer
}

// Handler is the article handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the article handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.renderer = poststats.NewRenderer(cfg.Site.Language)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:slug", s.Show)
	})

	return nil
}

// List renders one page of articles. The list is an archive view without stats.
func (s *Service) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	perPage := s.cfg.Site.ArticlesPerPage
	if perPage < 1 {
		perPage = 20
	}

	articles, total, err := controller.List(s.db, page, perPage)
	if err != nil {
		log.Error().Err(err).Msg("failed to list articles")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load articles")
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	return c.Render(ListTemplate, fiber.Map{
		"Title":      s.cfg.Title,
		"Articles":   articles,
		"Page":       page,
		"Pages":      pages,
		"HasPrev":    page > 1,
		"HasNext":    page < pages,
		"Navigation": navigation.ForArticles(s.cfg.Title, ""),
	}, handler.BaseLayout)
}

// Show renders one article with the stats block.
func (s *Service) Show(c *fiber.Ctx) error {
	slug := c.Params("slug")

	a, err := controller.GetBySlug(s.db, slug)
	if errors.Is(err, controller.ErrArticleNotFound) {
		return c.Status(fiber.StatusNotFound).SendString("Article not found")
	}

	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to load article")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load article")
	}

	opts, err := options.Load(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load post stats settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	result, err := s.renderer.Filter(a.Content, opts, true)
	if err != nil {
		// the article is still readable without its stats
		log.Warn().Err(err).Str("slug", slug).Msg("failed to render post stats")

		result = poststats.Result{Content: a.Content}
	}

	return c.Render(ShowTemplate, fiber.Map{
		"Title":      a.Title,
		"Article":    a,
		"Content":    template.HTML(result.Content), //nolint:gosec // stored article html
		"Stats":      result.Stats,
		"Navigation": navigation.ForArticles(a.Title, a.Slug).AddBreadcrumb(a.Title, Path+"/"+a.Slug, true),
	}, handler.BaseLayout)
}
