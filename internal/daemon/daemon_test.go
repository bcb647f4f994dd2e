package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/controller/article"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/db/models"
	"github.com/poststats/poststats/internal/poststats"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DB: config.DB{
			GormEngine: config.EngineSQLite,
			Path:       filepath.Join(t.TempDir(), "data", "poststats.db"),
		},
		Auth: config.Auth{AdminUser: "root", AdminPassword: "changeme"},
	}
}

func TestOpenDB_UnsupportedEngine(t *testing.T) {
	_, err := OpenDB(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, config.ErrUnsupportedDBEngine)
}

func TestSeed(t *testing.T) {
	cfg := testConfig(t)

	db, err := OpenDB(cfg)
	require.NoError(t, err)

	// seeding twice keeps a single admin and article
	require.NoError(t, Seed(cfg, db))
	require.NoError(t, Seed(cfg, db))

	user, err := auth.NewLocalProvider(db).Authenticate("root", "changeme")
	require.NoError(t, err)

	has, err := auth.NewService(db).HasPermission(user.ID, auth.PermAdminSettings)
	require.NoError(t, err)
	assert.True(t, has)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	count, err := article.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	opts, err := options.Load(db)
	require.NoError(t, err)
	assert.Equal(t, poststats.DefaultOptions(), opts)
}

func TestSeed_GeneratedPassword(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.AdminPassword = ""

	db, err := OpenDB(cfg)
	require.NoError(t, err)
	require.NoError(t, Seed(cfg, db))

	user, err := auth.NewLocalProvider(db).GetUserByUsername("root")
	require.NoError(t, err)
	assert.NotEmpty(t, user.Password)
	assert.False(t, user.VerifyPassword(""))
}

func TestNewSessionStorage_SQLiteUsesMemory(t *testing.T) {
	storage, err := newSessionStorage(testConfig(t))
	require.NoError(t, err)
	assert.Nil(t, storage)
}
