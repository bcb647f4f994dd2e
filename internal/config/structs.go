package config

import (
	"time"

	"github.com/poststats/poststats/internal/logger"
)

const defaultArticlesPerPage = 20

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Site      Site
	Webserver Webserver
	Auth      Auth
}

// Site holds settings of the publishing site.
type Site struct {
	Language        string // language of the stats block strings, BCP 47 (en, de, sr-Latn)
	ArticlesPerPage int    // page size of the article list
}

// Auth holds the bootstrap admin account.
type Auth struct {
	AdminUser     string
	AdminEmail    string
	AdminPassword string // generated and logged once when empty
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}
