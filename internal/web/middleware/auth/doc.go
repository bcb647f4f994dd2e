// Package auth provides the session middleware of the web application.
//
// Article pages and the filter API are public. Pages below ProtectedPrefix
// need a signed-in user and redirect to the login page otherwise. The
// signed-in user is added to fiber.Locals as "CurrentUser" for templates.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
//
// Permission checks are done per route by auth.RequirePermission.
package auth
