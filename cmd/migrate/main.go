package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/samhotchkiss/sindicato-comms/internal/automigrate"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
	"github.com/samhotchkiss/sindicato-comms/migrations"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	migrationsDir := "migrations"
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the dashboard database schema",
		Long: `Apply, roll back and inspect the embedded schema migrations.

Every command except create connects to the database named by DATABASE_URL.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", migrationsDir, "migrations directory used by create")

	root.AddCommand(
		&cobra.Command{
			Use:   "up [n]",
			Short: "Apply all migrations or the next n migrations",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrate.Migrate) error {
					if len(args) == 0 {
						return ignoreNoChange(m.Up())
					}
					steps, err := parseSteps(args[0])
					if err != nil {
						return err
					}
					return ignoreNoChange(m.Steps(steps))
				})
			},
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back all migrations or the last n migrations",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrate.Migrate) error {
					if len(args) == 0 {
						return ignoreNoChange(m.Down())
					}
					steps, err := parseSteps(args[0])
					if err != nil {
						return err
					}
					return ignoreNoChange(m.Steps(-steps))
				})
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Force set the migration version (fixes dirty state)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version: %s", args[0])
				}
				return withMigrator(func(m *migrate.Migrate) error {
					if err := m.Force(version); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Forced version to %d\n", version)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						fmt.Fprintln(cmd.OutOrStdout(), "No migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					state := "clean"
					if dirty {
						state = "dirty"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Version %d (%s)\n", version, state)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create new numbered migration files",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				upPath, downPath, err := createMigration(migrationsDir, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s and %s\n", upPath, downPath)
				return nil
			},
		},
		newSeedCmd(),
	)
	return root
}

func withMigrator(fn func(*migrate.Migrate) error) error {
	db, err := store.OpenPostgres(os.Getenv("DATABASE_URL"))
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := automigrate.New(context.Background(), db, migrations.FS)
	if err != nil {
		return err
	}
	defer automigrate.Close(m)
	return fn(m)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// createMigration writes an empty up/down pair numbered after the highest
// existing version in dir.
func createMigration(dir, rawName string) (string, string, error) {
	name := sanitizeName(rawName)
	if name == "" {
		return "", "", errors.New("migration name must include at least one alphanumeric character")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	versions, err := automigrate.Versions(os.DirFS(dir))
	if err != nil {
		return "", "", err
	}
	next := uint(1)
	if len(versions) > 0 {
		next = versions[len(versions)-1] + 1
	}

	base := fmt.Sprintf("%03d_%s", next, name)
	upPath := filepath.Join(dir, base+".up.sql")
	downPath := filepath.Join(dir, base+".down.sql")

	if err := writeMigrationFile(upPath, "-- migrate up\n"); err != nil {
		return "", "", err
	}
	if err := writeMigrationFile(downPath, "-- migrate down\n"); err != nil {
		return "", "", err
	}
	return upPath, downPath, nil
}

func parseSteps(value string) (int, error) {
	steps, err := strconv.Atoi(value)
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("invalid steps: %s", value)
	}
	return steps, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = unsafeNameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "_")
}

func writeMigrationFile(path string, contents string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(contents)
	return err
}
