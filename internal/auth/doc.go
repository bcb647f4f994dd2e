// Package auth provides local authentication and role based access checks.
//
// Users sign in with a username and an Argon2id hashed password stored in the
// users table. Each user has one role, roles carry permissions:
//
//	users.role_id -> role_permissions -> permissions.name
//
// Routes are protected with RequirePermission:
//
//	authService := auth.NewService(db)
//
//	app.Get("/admin/settings/post-stats",
//	    auth.RequirePermission(authService, auth.PermAdminSettings),
//	    handler,
//	)
package auth
