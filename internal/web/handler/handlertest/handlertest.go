// Package handlertest provides fixtures for the web handler tests.
package handlertest

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/models"
	"github.com/poststats/poststats/internal/web/session"
)

// Views is a fiber view engine recording the last render call.
// It writes the template name, or the "error" value when present.
type Views struct {
	mu     sync.Mutex
	name   string
	layout string
	data   fiber.Map
}

// Load implements fiber.Views.
func (v *Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data any, layout ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.name = name
	v.layout = ""

	if len(layout) > 0 {
		v.layout = layout[0]
	}

	m, _ := data.(fiber.Map)
	v.data = m

	if msg, ok := m["error"].(string); ok && msg != "" {
		_, err := io.WriteString(w, msg)
		return err
	}

	_, err := io.WriteString(w, name)

	return err
}

// Last returns the template, layout and data of the last render call.
func (v *Views) Last() (string, string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.layout, v.data
}

// NewApp returns a fiber app rendering with views.
func NewApp(views *Views) *fiber.App {
	return fiber.New(fiber.Config{Views: views})
}

// NewDB opens a migrated in-memory sqlite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// every new connection would open its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate")

	return db
}

// NewConfig returns a config valid for handler tests.
func NewConfig() *config.Config {
	return &config.Config{
		Title: "Post stats test",
		Site:  config.Site{Language: "en", ArticlesPerPage: 2},
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

// CreateUser stores an active user whose role carries permissions.
func CreateUser(t *testing.T, db *gorm.DB, username, password string, permissions ...string) *models.User {
	t.Helper()

	role, err := auth.NewService(db).EnsureRole("role-"+username, "test role", permissions...)
	require.NoError(t, err)

	user, err := auth.NewLocalProvider(db).CreateUser(username, "", password, role.ID)
	require.NoError(t, err)

	return user
}

// SignIn creates a user with permissions and a session for it.
// It returns the value of the session cookie.
func SignIn(t *testing.T, db *gorm.DB, username string, permissions ...string) string {
	t.Helper()

	if session.Store == nil {
		session.Init(nil)
	}

	user := CreateUser(t, db, username, "secret", permissions...)

	id, err := session.GenerateSessionID()
	require.NoError(t, err)

	require.NoError(t, (&session.Data{User: *user}).Write(id, time.Minute))

	return id
}

// Cookie formats a session cookie header value.
func Cookie(sessionID string) string {
	return fmt.Sprintf("%s=%s", session.CookieName, sessionID)
}
