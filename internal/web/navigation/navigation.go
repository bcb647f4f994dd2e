// Package navigation builds the page title, active menu entry and breadcrumbs of a page.
package navigation

// Menu sections.
const (
	SectionArticles = "articles"
	SectionAdmin    = "admin"
)

// HomeTitle and HomeURL form the first breadcrumb of every page.
const (
	HomeTitle = "Articles"
	HomeURL   = "/articles"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// ForArticles starts a context in the articles section with the home breadcrumb.
// The home breadcrumb is active when page is empty.
func ForArticles(pageTitle, page string) *Context {
	return NewContext(pageTitle, SectionArticles, page).
		AddBreadcrumb(HomeTitle, HomeURL, page == "")
}

// ForAdmin starts a context in the admin section ending with the active page.
func ForAdmin(pageTitle, page, url string) *Context {
	return NewContext(pageTitle, SectionAdmin, page).
		AddBreadcrumb(HomeTitle, HomeURL, false).
		AddBreadcrumb("Settings", "", false).
		AddBreadcrumb(pageTitle, url, true)
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
