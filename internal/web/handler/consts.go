package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// HomePath is where "/" and a successful login lead to.
	HomePath = "/articles"

	// RouterRootPath is the path of a route group's own endpoint.
	RouterRootPath = ""

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
