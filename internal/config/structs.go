package config

import (
	"time"

	"github.com/authorsite/authorsite/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Media     Media
	Theme     Theme
	Content   Content
	Client    Client
}

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite database file
	GormEngine string // mysql, postgres or sqlite
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic    bool          // enable static file browsing (for development purposes only)
	CacheEnabled    bool          // true = cache public GET api responses
	CacheExpiration time.Duration // lifetime of a cached response
	DisableRecover  bool          // disable recover middleware
	Domain          string        // domain name for the webserver
	Port            int           // listening port for the webserver
	ShutDownTime    int           // wait time for shutdown
	URL             string        // base url for the webserver
	AdminHeader     string        // header which marks a request as coming from the admin console
}

// Media holds the upload settings.
type Media struct {
	Dir           string // directory uploaded files are written to
	URLPrefix     string // public prefix the upload dir is served under
	MaxUploadSize int64  // max accepted upload size in bytes
}

// Theme holds the palette resolver settings.
type Theme struct {
	CacheKey   string // storage key of the last resolved palette
	CacheTable string // table used by the sql storage backends
}

// Content holds defaults applied to new content records.
type Content struct {
	DefaultAuthor string
	HomePosts     int // number of published posts on the home page
	HomeBooks     int // number of featured books on the home page
}

// Client holds the settings of the command line api client.
type Client struct {
	SiteURL   string
	Timeout   time.Duration
	StateFile string // bbolt file mirroring the browser local storage
}
