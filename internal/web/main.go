package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/authorsite/authorsite/internal/config"
	accesslog "github.com/authorsite/authorsite/internal/logger/adapter/fiber"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/web/handler"
	"github.com/authorsite/authorsite/internal/web/handler/api"
	"github.com/authorsite/authorsite/internal/web/handler/api/about"
	"github.com/authorsite/authorsite/internal/web/handler/api/blog"
	"github.com/authorsite/authorsite/internal/web/handler/api/books"
	"github.com/authorsite/authorsite/internal/web/handler/api/colors"
	"github.com/authorsite/authorsite/internal/web/handler/api/media"
	"github.com/authorsite/authorsite/internal/web/handler/api/settings"
	"github.com/authorsite/authorsite/internal/web/handler/site"
	"github.com/authorsite/authorsite/internal/web/handler/themecss"
	"github.com/authorsite/authorsite/internal/web/middleware/admin"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 while it shuts down.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	requestIDLocal = "requestid"
	dateLayout     = "02.01.2006"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	resolver     *theme.Resolver
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneFiber <- err
			return
		}

		doneFiber <- nil
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the http server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
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

// Alive reports whether checkalive currently answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// Views creates the template engine. In dev mode templates are read from disk and reloaded.
func Views(cfg *config.Config) *html.Engine {
	httpFS := http.FS(siteTemplates())
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("date", func(t *time.Time) string {
		if t == nil {
			return ""
		}

		return t.Format(dateLayout)
	})

	return templateEngine
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, resolver *theme.Resolver) (*Service, error) {
	if cfg == nil || db == nil || resolver == nil {
		return nil, handler.ErrNilACD
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      int(cfg.Media.MaxUploadSize) + 1<<20,
			Views:          Views(cfg),
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
		db:           db,
		resolver:     resolver,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	}))

	app.Use(accesslog.New(accesslog.Config{
		Config:         cfg.Log,
		CheckAliveURI:  CheckAlivePath,
		AdminHeader:    cfg.Webserver.AdminHeader,
		RequestIDLocal: requestIDLocal,
	}))

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	if cfg.Media.Dir != "" {
		app.Static(cfg.Media.URLPrefix, cfg.Media.Dir, fiber.Static{Browse: cfg.Webserver.BrowseStatic})
	}

	app.Use(api.Prefix, admin.New(admin.Config{Header: cfg.Webserver.AdminHeader}))

	if cfg.Webserver.CacheEnabled {
		responses := memory.New()

		app.Use(api.Prefix, purgeOnWrite(responses), cache.New(cache.Config{
			// the admin console and the palette resolver always read fresh data
			Next: func(c *fiber.Ctx) bool {
				return admin.IsAdmin(c) || strings.HasPrefix(c.Path(), colors.Path)
			},
			// filters live in the query string
			KeyGenerator: func(c *fiber.Ctx) string {
				return utils.CopyString(c.OriginalURL())
			},
			Expiration:   cfg.Webserver.CacheExpiration,
			CacheControl: true,
			Storage:      responses,
		}))
	}

	services := []handler.Service{
		&about.Handler,
		&blog.Handler,
		&books.Handler,
		&colors.Handler,
		&media.Handler,
		&settings.Handler,
	}

	for _, svc := range services {
		if err := svc.Init(app, cfg, db); err != nil {
			return nil, err
		}
	}

	if err := themecss.Handler.Init(app, cfg, db, resolver); err != nil {
		return nil, err
	}

	if err := site.Handler.Init(app, cfg, db, resolver); err != nil {
		return nil, err
	}

	return service, nil
}

// purgeOnWrite drops every cached api response once a write succeeded.
func purgeOnWrite(storage fiber.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil || admin.IsSafeMethod(c.Method()) || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}

		if rerr := storage.Reset(); rerr != nil {
			log.Warn().Err(rerr).Msg("can't purge api response cache")
		}

		return nil
	}
}
