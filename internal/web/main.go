// Package web runs the fiber service: articles, the filter API, the post
// stats settings screen, login, metrics and liveness.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	fiberlogger "github.com/poststats/poststats/internal/logger/adapter/fiber"
	"github.com/poststats/poststats/internal/web/handler"
	"github.com/poststats/poststats/internal/web/handler/admin/settings/poststats"
	"github.com/poststats/poststats/internal/web/handler/admin/settings/store"
	"github.com/poststats/poststats/internal/web/handler/api/articles"
	"github.com/poststats/poststats/internal/web/handler/api/filter"
	"github.com/poststats/poststats/internal/web/handler/article"
	"github.com/poststats/poststats/internal/web/handler/login"
	"github.com/poststats/poststats/internal/web/handler/logout"
	authmiddleware "github.com/poststats/poststats/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic, 503 during shutdown.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the configured port and blocks until it stops.
func (s *Service) Start() error {
	addr := ":" + strconv.Itoa(s.cfg.Webserver.Port)

	log.Info().Str("addr", addr).Str("url", s.cfg.Webserver.URL).Msg("starting http server")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown lets checkalive fail for ShutDownTime seconds so load balancers
// drain this instance, then stops the http server.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newTemplateEngine(cfg),
			// CurrentUser and permissions reach the templates
			PassLocalsToViews: true,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		authService:  auth.NewService(db),
		fastShutDown: cfg.DevMode,
	}

	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Use(authmiddleware.Middleware)
	app.Use(auth.AddPermissionsToLocals(service.authService))

	// handlers register their own routes
	mustInit(login.Handler.Init(app, cfg, db))
	logout.Handler.Init(app, cfg)
	mustInit(article.Handler.Init(app, cfg, db))
	mustInit(filter.Handler.Init(app, cfg, db))
	mustInit(articles.Handler.Init(app, cfg, db, service.authService, nil))
	poststats.Handler.Init(app, cfg, db, service.authService)
	store.Handler.Init(app, cfg, db, service.authService)

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.Redirect(handler.HomePath)
	})

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func newTemplateEngine(cfg *config.Config) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in dev mode templates are read from disk on every render
	if cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	return engine
}

func mustInit(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init web handler")
	}
}
