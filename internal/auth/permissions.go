package auth

// Permission names in resource.action format.
const (
	// PermAdminSettings allows changing the post stats display settings.
	PermAdminSettings = "admin.settings"
	// PermArticleImport allows storing new articles.
	PermArticleImport = "article.import"
)

// AdminRole is the role seeded for the bootstrap admin user.
const AdminRole = "admin"

// AllPermissions returns every permission keyed by name with its description.
func AllPermissions() map[string]string {
	return map[string]string{
		PermAdminSettings: "Change the post stats display settings",
		PermArticleImport: "Import articles",
	}
}
