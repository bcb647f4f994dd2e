package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/dsn"
	"github.com/poststats/poststats/internal/db/models"
)

// sessionTable stores the fiber sessions of the sql engines.
const sessionTable = "sessions"

// OpenDB opens the configured database and migrates all models.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	source, err := dsn.Create(cfg)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(source)
	case config.EnginePostgres:
		dialector = gormpostgres.Open(source)
	default:
		if dir := filepath.Dir(source); dir != "." && dir != "" {
			if err = os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		dialector = sqlite.Open(source)
	}

	logLevel := gormlogger.Warn
	if cfg.DevMode {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debug().Str("engine", engineName(cfg)).Msg("database ready")

	return db, nil
}

// newSessionStorage returns the session storage of the configured engine.
// sqlite keeps sessions in memory.
func newSessionStorage(cfg *config.Config) (fiber.Storage, error) {
	source, err := dsn.Create(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: source,
			Table:         sessionTable,
		}), nil
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: source,
			Table:         sessionTable,
		}), nil
	default:
		return nil, nil //nolint:nilnil // memory storage
	}
}

func engineName(cfg *config.Config) string {
	if cfg.DB.GormEngine == "" {
		return config.EngineSQLite
	}

	return cfg.DB.GormEngine
}
