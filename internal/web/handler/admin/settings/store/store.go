// Package store serves a read-only view of the settings key-value table.
package store

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/db/controller/setting"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/navigation"
)

const (
	// Path is the path of the stored settings page.
	Path = handler.RootPath + "admin/settings/store"

	// TemplateName is the name of the stored settings template.
	TemplateName = "admin/settings/store"

	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 25

	maxPageSize = 100

	// TypePostStats marks keys registered by the post stats options.
	TypePostStats = "post-stats"
	// TypeOther marks every other key.
	TypeOther = "other"

	pageTitle = "Stored settings"
	pageID    = "store"
)

// Service is the stored settings handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Data represents the data passed to the template.
type Data struct {
	Settings    []Entry
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
	SearchQuery string
	FilterType  string
}

// Entry is one row of the settings table.
type Entry struct {
	Name  string
	Type  string
	Value string
}

// Handler is the stored settings handler.
var Handler = Service{}

// Init initializes the stored settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path,
		auth.RequirePermission(authService, auth.PermAdminSettings),
		s.Get,
	)
}

// Get renders one page of the stored settings, optionally searched and filtered by type.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.ForAdmin(pageTitle, pageID, Path)

	rows, err := setting.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stored settings")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Navigation": nav,
			"Error":      "Failed to list stored settings",
		}, handler.BaseLayout)
	}

	page, pageSize := getPaginationParams(c)
	searchQuery, filterType := c.Query("search", ""), c.Query("type", "")

	registered := registeredKeys()
	entries := make([]Entry, 0, len(rows))

	for _, row := range rows {
		e := Entry{Name: row.Name, Value: string(row.Value), Type: TypeOther}
		if registered[row.Name] {
			e.Type = TypePostStats
		}

		if includeEntry(e, searchQuery, filterType) {
			entries = append(entries, e)
		}
	}

	totalItems := len(entries)
	totalPages, page := computeTotalPagesAndAdjust(totalItems, pageSize, page)
	startIdx, endIdx := pageSliceBounds(totalItems, pageSize, page)

	data := Data{
		Settings:    entries[startIdx:endIdx],
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
		SearchQuery: searchQuery,
		FilterType:  filterType,
	}

	log.Debug().
		Int("total_settings", totalItems).
		Int("page", page).
		Str("search", searchQuery).
		Str("filter_type", filterType).
		Msg("stored settings listed")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       data,
		"Types":      []string{TypePostStats, TypeOther},
	}, handler.BaseLayout)
}

func registeredKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, f := range options.Fields() {
		keys[f.Key] = true
	}

	return keys
}

// getPaginationParams parses and normalizes page and pageSize query parameters.
func getPaginationParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	return page, pageSize
}

// includeEntry reports whether e matches the case-insensitive search on name
// or value and the type filter.
func includeEntry(e Entry, searchQuery, filterType string) bool {
	if searchQuery != "" {
		q := strings.ToLower(searchQuery)
		if !strings.Contains(strings.ToLower(e.Name), q) && !strings.Contains(strings.ToLower(e.Value), q) {
			return false
		}
	}

	return filterType == "" || e.Type == filterType
}

// computeTotalPagesAndAdjust computes total pages and clamps page into range.
func computeTotalPagesAndAdjust(totalItems, pageSize, page int) (int, int) {
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
	}

	return totalPages, page
}

// pageSliceBounds calculates start and end indices for slicing a page.
func pageSliceBounds(totalItems, pageSize, page int) (int, int) {
	startIdx := min(max((page-1)*pageSize, 0), totalItems)
	endIdx := min(startIdx+pageSize, totalItems)

	return startIdx, endIdx
}
