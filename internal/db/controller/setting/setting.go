// Package setting provides access to the settings key-value table.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to read or write a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting
	result := db.Where(nameQueryPattern, name).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetValue retrieves the value of a setting, or def when the setting does not exist.
func GetValue(db *gorm.DB, name, def string) (string, error) {
	s, err := Get(db, name)
	if errors.Is(err, ErrSettingNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}

	return string(s.Value), nil
}

// GetAll retrieves all settings ordered by name.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	result := db.Order("name").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// Set creates or updates a setting by name (upsert operation).
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting
	result := db.Where(nameQueryPattern, name).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = models.Setting{
			Name:  name,
			Value: value,
		}

		if result = db.Create(&setting); result.Error != nil {
			return nil, result.Error
		}

		return &setting, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	setting.Value = value
	result = db.Save(&setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return &setting, nil
}

// SetDefault stores value under name only if the setting does not exist yet.
// It reports whether the setting was created.
func SetDefault(db *gorm.DB, name string, value []byte) (bool, error) {
	_, err := Get(db, name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrSettingNotFound) {
		return false, err
	}

	if _, err = Set(db, name, value); err != nil {
		return false, err
	}

	return true, nil
}

// DeleteByName deletes a setting by name.
func DeleteByName(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrSettingNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
