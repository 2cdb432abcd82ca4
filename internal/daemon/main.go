// Package daemon wires the database, the palette cache and the web service together.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	storagemysql "github.com/gofiber/storage/mysql/v2"
	storagepostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/authorsite/authorsite/internal/config"
	"github.com/authorsite/authorsite/internal/db/controller/palette"
	"github.com/authorsite/authorsite/internal/db/dsn"
	"github.com/authorsite/authorsite/internal/db/models"
	"github.com/authorsite/authorsite/internal/logger"
	"github.com/authorsite/authorsite/internal/theme"
	"github.com/authorsite/authorsite/internal/web"
)

const cacheGCInterval = 10 * time.Minute

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	cache      fiber.Storage
	webService *web.Service
}

// Open connects to the configured database engine.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	case config.EngineSQLite, "":
		if cfg.DB.Path != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o750); err != nil {
				return nil, errors.Wrap(err, "create database directory")
			}
		}

		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, errors.Errorf("unknown gorm engine %q", cfg.DB.GormEngine)
	}

	gormCfg := &gorm.Config{}
	if !cfg.DevMode {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.GormEngine == config.EngineSQLite || cfg.DB.GormEngine == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(models.All()...), "migrate database")
}

// NewCache creates the storage the resolved palette is mirrored into. The sql engines
// share the site database, sqlite falls back to process memory.
func NewCache(cfg *config.Config, db *gorm.DB) (fiber.Storage, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		return storagemysql.New(storagemysql.Config{
			Db:         sqlDB,
			Table:      cfg.Theme.CacheTable,
			GCInterval: cacheGCInterval,
		}), nil
	case config.EnginePostgres:
		return storagepostgres.New(storagepostgres.Config{
			ConnectionURI: dsn.PostgresURI(cfg.DB),
			Table:         cfg.Theme.CacheTable,
			GCInterval:    cacheGCInterval,
		}), nil
	default:
		return memory.New(memory.Config{GCInterval: cacheGCInterval}), nil
	}
}

// New opens and seeds the database and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	if err = seed(cfg, db); err != nil {
		return nil, err
	}

	cache, err := NewCache(cfg, db)
	if err != nil {
		return nil, errors.Wrap(err, "create palette cache")
	}

	resolver := theme.NewResolver(palette.Source{DB: db}, cache)
	resolver.CacheKey = cfg.Theme.CacheKey

	webService, err := web.New(cfg, db, resolver)
	if err != nil {
		return nil, errors.Wrap(err, "create web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         db,
		cache:      cache,
		webService: webService,
	}, nil
}

// Start serves http until a shutdown signal arrives, then releases all resources.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("engine", d.cfg.DB.GormEngine).Msg("starting web service")

	err := d.webService.Start(addr)

	if closeErr := d.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("shutdown cleanup failed")
	}

	return err
}

// Close releases the cache, the database and the log writers.
func (d *Daemon) Close() error {
	var errs []error

	if d.cache != nil {
		errs = append(errs, d.cache.Close())
	}

	// the mysql cache closes the shared pool itself; a second Close is a no-op
	if sqlDB, err := d.db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}

	errs = append(errs, logger.Close())

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
