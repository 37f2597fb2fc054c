// Package automigrate runs pending database migrations on startup.
package automigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Versions lists the migration versions found in fsys in ascending order.
// Every up migration must have a matching down migration.
func Versions(fsys fs.FS) ([]uint, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	ups := make(map[uint]string)
	downs := make(map[uint]bool)
	for _, e := range entries {
		name := e.Name()
		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}
		// Numeric prefix, e.g. "001" from "001_create_dashboard.up.sql".
		parts := strings.SplitN(name, "_", 2)
		ver, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: invalid version prefix", name)
		}
		if direction == "up" {
			ups[uint(ver)] = name
		} else {
			downs[uint(ver)] = true
		}
	}

	versions := make([]uint, 0, len(ups))
	for ver, name := range ups {
		if !downs[ver] {
			return nil, fmt.Errorf("migration %s has no down migration", name)
		}
		versions = append(versions, ver)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions, nil
}

// Run applies all pending up migrations from fsys to db.
func Run(db *sql.DB, fsys fs.FS) error {
	versions, err := Versions(fsys)
	if err != nil {
		return err
	}

	m, err := New(context.Background(), db, fsys)
	if err != nil {
		return err
	}
	defer Close(m)

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Printf("✅ Database up to date (%d migrations known)", len(versions))
		return nil
	case err != nil:
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database left dirty at version %d", version)
	}
	log.Printf("✅ Migrations applied (now at version %d)", version)
	return nil
}

// New returns a migrator reading migrations from fsys. It holds one
// connection checked out of db until Close, which returns the connection to
// the pool and leaves db open.
func New(ctx context.Context, db *sql.DB, fsys fs.FS) (*migrate.Migrate, error) {
	source, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("open migration database: %w", err)
	}
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = source.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("open migration database: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	return m, nil
}

// Close releases the migrator's source and connection.
func Close(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		log.Printf("warning: failed to close migration source: %v", sourceErr)
	}
	if dbErr != nil {
		log.Printf("warning: failed to close migration connection: %v", dbErr)
	}
}
