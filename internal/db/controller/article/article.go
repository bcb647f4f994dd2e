// Package article provides access to the articles table.
package article

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/poststats/poststats/internal/db/models"
)

var (
	// ErrArticleNotFound is returned when no article has the requested slug.
	ErrArticleNotFound = errors.New("article not found")
	// ErrInvalidSlug is returned for slugs that are empty or contain other than a-z, 0-9 and '-'.
	ErrInvalidSlug = errors.New("slug must consist of a-z, 0-9 and '-'")
	// ErrTitleEmpty is returned when saving an article without a title.
	ErrTitleEmpty = errors.New("article title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRun  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a slug from a title.
func Slugify(title string) string {
	return strings.Trim(nonSlugRun.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

// GetBySlug retrieves an article by its slug.
func GetBySlug(db *gorm.DB, slug string) (*models.Article, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var a models.Article

	err := db.Where("slug = ?", slug).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}

	if err != nil {
		return nil, err
	}

	return &a, nil
}

// List returns one page of articles, newest first, and the total count.
// Pages start at 1.
func List(db *gorm.DB, page, perPage int) ([]models.Article, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	if page < 1 {
		page = 1
	}

	var (
		articles []models.Article
		total    int64
	)

	if err := db.Model(&models.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Order("id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

// Save creates the article or replaces title and content of the article with the same slug.
func Save(db *gorm.DB, a *models.Article) error {
	if db == nil {
		return ErrDBNil
	}

	if !slugPattern.MatchString(a.Slug) {
		return ErrInvalidSlug
	}

	if strings.TrimSpace(a.Title) == "" {
		return ErrTitleEmpty
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "updated_at"}),
	}).Create(a).Error
}

// Count returns the number of stored articles.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var total int64

	err := db.Model(&models.Article{}).Count(&total).Error

	return total, err
}
