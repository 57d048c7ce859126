// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codr1/airbnbviz/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "postgres"
)

type DB struct {
	*sqlx.DB
}

// New opens a SQLite database at dataSourceName, applies the embedded
// migrations and returns the handle.
func New(dataSourceName string) (*DB, error) {
	return open(driverSQLite, dataSourceName)
}

// NewFromConfig opens the configured listings database and applies the
// embedded migrations.
func NewFromConfig(cfg config.DatabaseConfig) (*DB, error) {
	database, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(database.DB.DB, database.DriverName()); err != nil {
		database.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}
	return database, nil
}

// Open connects to the configured database without migrating it. It supports
// "sqlite" (creating the database directory if needed) and "postgres" (DSN
// taken from DATABASE_URL).
func Open(cfg config.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
		return connect(driverSQLite, ensureForeignKeysEnabledDSN(cfg.Filename))
	case "postgres":
		return connect(driverPostgres, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func open(driverName, dataSourceName string) (*DB, error) {
	if driverName == driverSQLite {
		dataSourceName = ensureForeignKeysEnabledDSN(dataSourceName)
	}
	database, err := connect(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(database.DB.DB, driverName); err != nil {
		database.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return database, nil
}

func connect(driverName, dataSourceName string) (*DB, error) {
	sqlDB, err := sqlx.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return &DB{DB: sqlDB}, nil
}

// Migrator returns a migrate instance over the embedded migrations.
func (db *DB) Migrator() (*migrate.Migrate, error) {
	return NewMigrate(db.DB.DB, db.DriverName())
}

// ensureForeignKeysEnabledDSN adds `_fk=1` to a SQLite DSN unless it is already set.
func ensureForeignKeysEnabledDSN(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_fk=1"
	}
	return dataSourceName + "?_fk=1"
}

// NewMigrate returns a migrate instance bound to db using the embedded
// migrations. The caller must not close the returned instance while db is in use.
func NewMigrate(db *sql.DB, driverName string) (*migrate.Migrate, error) {
	var (
		driver database.Driver
		err    error
	)
	switch driverName {
	case driverSQLite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case driverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("no migration driver for %s", driverName)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// runMigrations applies the embedded migrations. "No change" is not an error.
func runMigrations(db *sql.DB, driverName string) error {
	m, err := NewMigrate(db, driverName)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// RunInTx runs fn inside a transaction, rolling back when fn fails or panics.
func (db *DB) RunInTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	return nil
}
