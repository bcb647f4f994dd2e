// Package models contains database model definitions.
package models

// Setting is one entry of the settings key-value table.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique;size:191"`
	Value []byte
}
