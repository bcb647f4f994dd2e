package models

import "time"

// Permission is a named access right in resource.action format (e.g., "admin.settings").
type Permission struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;size:100;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
