package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/poststats/poststats/internal/db/models"
)

// Service provides authorization checks against the role tables.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasPermission checks if the role of a user carries a specific permission.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	var count int64

	err := s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ? AND permissions.name = ?", userID, true, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// GetUserPermissions retrieves all permissions of the user's role.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ?", userID).
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// EnsureRole creates the named role if needed and grants it the given permissions.
// Missing permissions are created with the description from AllPermissions.
func (s *Service) EnsureRole(name, description string, permissions ...string) (*models.Role, error) {
	var role models.Role

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Role{Name: name}).
			Attrs(models.Role{Description: description}).
			FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}

		descriptions := AllPermissions()

		for _, permName := range permissions {
			var perm models.Permission

			if err := tx.Where(models.Permission{Name: permName}).
				Attrs(models.Permission{Description: descriptions[permName]}).
				FirstOrCreate(&perm).Error; err != nil {
				return fmt.Errorf("failed to create permission %s: %w", permName, err)
			}

			if err := tx.Omit(clause.Associations).
				Where(models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).
				FirstOrCreate(&models.RolePermission{}).Error; err != nil {
				return fmt.Errorf("failed to grant %s to role %s: %w", permName, name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// RoleByName looks up a role.
func (s *Service) RoleByName(name string) (*models.Role, error) {
	var role models.Role

	err := s.db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query role: %w", err)
	}

	return &role, nil
}

// AssignRoleToUser assigns a role to a user.
func (s *Service) AssignRoleToUser(userID uint64, roleID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}
