// Package ctrkstore archives completed decode runs to a local SQLite
// database, so a fleet of CLI invocations can be queried after the fact
// without re-parsing the source CTRK files.
package ctrkstore

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is a thin wrapper over *sql.DB that owns the decode_run table.
type DB struct {
	*sql.DB
}

// applyPragmas sets WAL mode and a busy timeout so a CLI invocation that
// appends one row doesn't block a concurrent reader of the same file.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("ctrkstore: %q: %w", p, err)
		}
	}
	return nil
}

// Open opens (creating if necessary) the SQLite database at path and brings
// its schema up to the latest migration.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ctrkstore: open: %w", err)
	}
	if err := applyPragmas(sqlDB); err != nil {
		return nil, err
	}
	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *DB) newMigrate() (*migrate.Migrate, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("ctrkstore: migrations sub-fs: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("ctrkstore: iofs source: %w", err)
	}
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("ctrkstore: sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("ctrkstore: migrate instance: %w", err)
	}
	return m, nil
}

func (db *DB) migrateUp() error {
	m, err := db.newMigrate()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ctrkstore: migrate up: %w", err)
	}
	return nil
}
