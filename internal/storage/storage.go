// Package storage is the device-local persistent store: a SQLite database
// holding the expenses table and the per-user preference table.
//
// The sync engine never addresses local rows by id. Rows are matched by
// field equality at this boundary; the autoincrement id exists only inside
// this package and is never transmitted to the remote store.
package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	DB       *sql.DB
	Expenses IExpenseTable
	Prefs    IPreferenceTable
}

// Open opens (creating if needed) the local database at path.
func Open(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	// Single writer. Concurrent callers (a delete racing a background
	// pull insert) serialize here instead of interleaving partial writes.
	db.SetMaxOpenConns(1)

	return &Storage{
		DB:       db,
		Expenses: NewExpensesTable(db),
		Prefs:    NewPreferencesTable(db),
	}, nil
}

// Migrate brings the schema up to date using the embedded migrations.
func (s *Storage) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(s.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
