package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(username, password string) (*models.User, error) {
	user, err := p.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(username, email, password string, roleID uint) (*models.User, error) {
	var existingUser models.User

	err := p.db.Where("username = ? OR (email <> '' AND email = ?)", username, email).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		Active:   true,
		Username: username,
		Email:    email,
		Password: models.HashPassword(password),
		RoleID:   roleID,
	}

	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ChangePassword changes a user's password after checking the old one.
func (p *LocalProvider) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	return p.ResetPassword(userID, newPassword)
}

// ResetPassword sets a new password without checking the old one.
func (p *LocalProvider) ResetPassword(userID uint64, newPassword string) error {
	return p.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", models.HashPassword(newPassword)).Error
}

// GetUserByUsername retrieves a user by username.
func (p *LocalProvider) GetUserByUsername(username string) (*models.User, error) {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// CountUsers returns the number of stored users.
func (p *LocalProvider) CountUsers() (int64, error) {
	var count int64

	err := p.db.Model(&models.User{}).Count(&count).Error

	return count, err
}
