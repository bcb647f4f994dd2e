package models

// All returns every model, in migration order.
func All() []any {
	return []any{
		&Setting{},
		&Article{},
		&Role{},
		&Permission{},
		&RolePermission{},
		&User{},
	}
}
