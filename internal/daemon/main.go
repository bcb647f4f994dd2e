// Package daemon wires database, sessions and the web service and runs them.
package daemon

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/web"
	"github.com/poststats/poststats/internal/web/session"
)

// ErrConfigNil is returned when no configuration is given.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	db         *gorm.DB
}

// New opens and seeds the database and prepares the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	if err = Seed(cfg, db); err != nil {
		return nil, err
	}

	storage, err := newSessionStorage(cfg)
	if err != nil {
		return nil, err
	}

	session.Init(storage)

	return &Daemon{
		webService: web.New(cfg, db),
		db:         db,
	}, nil
}

// Start runs the web service until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- d.webService.Start()
	}()

	go d.webService.WaitShutdown()

	if err := <-errCh; err != nil {
		log.Error().Err(err).Msg("fiber listen error")

		return err
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	return nil
}
