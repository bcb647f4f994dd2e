package models

// RolePermission maps permissions to roles.
// When a role is deleted, its permission assignments are removed (CASCADE).
type RolePermission struct {
	RoleID       uint       `gorm:"primaryKey;column:role_id"`
	PermissionID uint       `gorm:"primaryKey;column:permission_id"`
	Role         Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	Permission   Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "role_permissions"
}
