package models

import "time"

// Article is a published article shown by the article views.
type Article struct {
	// ID is the unique identifier for the article.
	ID uint64 `gorm:"primaryKey"`
	// Slug is the unique URL path segment of the article.
	Slug string `gorm:"unique;size:191;not null"`
	// Title is the article headline.
	Title string `gorm:"size:255;not null"`
	// Content is the HTML body of the article.
	Content string `gorm:"type:text"`
	// CreatedAt is the timestamp when the article was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the article was last updated (managed by GORM).
	UpdatedAt time.Time
}
