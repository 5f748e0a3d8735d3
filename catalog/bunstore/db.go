package bunstore

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config selects the store driver and connection string.
//
// For SQLite the DSN should enable foreign key enforcement, e.g.
// "file:catalog.db?_foreign_keys=on", otherwise the image/review cascades
// declared by CreateSchema are silently ignored.
type Config struct {
	// Driver is "sqlite3" or "postgres". Empty defaults to sqlite3.
	Driver string
	// DSN is the driver-specific connection string.
	DSN string
}

// Open builds the shared database handle. The returned *bun.DB is pooled
// and safe for concurrent use; construct it once at startup and release it
// with Close during shutdown.
func Open(cfg Config) (*bun.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}

	var dialect schema.Dialect
	switch driver {
	case "sqlite3":
		dialect = sqlitedialect.New()
	case "postgres":
		dialect = pgdialect.New()
	default:
		return nil, fmt.Errorf("bunstore: unsupported driver %q", driver)
	}

	sqldb, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("bunstore: open %s: %w", driver, err)
	}

	return bun.NewDB(sqldb, dialect), nil
}
