// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/authorsite/authorsite/internal/config"
)

// Create builds the Data Source Name of the configured gorm engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return MySQL(cfg.DB)
	case config.EnginePostgres:
		return Postgres(cfg.DB)
	default:
		return SQLite(cfg.DB)
	}
}

// MySQL builds a go-sql-driver style DSN.
func MySQL(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s)/%s",
		db.User,
		db.Password,
		net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a libpq key/value DSN. Extras are appended verbatim, e.g. "sslmode=disable".
func Postgres(db config.DB) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		db.Host,
		db.Port,
		db.User,
		db.Password,
		db.Name,
	)

	if db.Extras != "" {
		out += " " + db.Extras
	}

	return out
}

// PostgresURI builds a postgres:// connection URI as expected by pgx pools.
func PostgresURI(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

// SQLite returns the database file, falling back to a shared in-memory database.
func SQLite(db config.DB) string {
	if db.Path == "" {
		return "file::memory:?cache=shared"
	}

	return db.Path
}
