package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrator wraps a golang-migrate instance bound to the embedded migrations
// of one driver. It uses its own connection because closing the migrate
// driver closes the underlying *sql.DB.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator opens a dedicated connection and prepares the migrations for
// config.Driver.
func NewMigrator(config *Config) (*Migrator, error) {
	var (
		sqlDriver string
		dir       string
	)
	switch config.Driver {
	case DriverSQLite:
		sqlDriver, dir = "sqlite3", "migrations/sqlite"
	case DriverPostgres:
		sqlDriver, dir = "postgres", "migrations/postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	conn, err := sql.Open(sqlDriver, config.DSN())
	if err != nil {
		return nil, fmt.Errorf("open migration database: %w", err)
	}

	var driver migratedb.Driver
	if config.Driver == DriverSQLite {
		driver, err = migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	} else {
		driver, err = migratepg.WithInstance(conn, &migratepg.Config{})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create %s migration driver: %w", config.Driver, err)
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, config.Driver, driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Down rolls back steps migrations, or all of them when steps <= 0.
func (mg *Migrator) Down(steps int) error {
	var err error
	if steps > 0 {
		err = mg.m.Steps(-steps)
	} else {
		err = mg.m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// Version returns the applied migration version. A database without any
// applied migration reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and the migration connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
