// Command migration applies the PostgreSQL schema under db/migrations.
//
// Usage:
//
//	migration up
//	migration down 1
//	migration version
//	migration force 2
//	migration goto 1
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/app"
	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

var logger = logging.NewConsole(logging.LevelInfo)

// Directories tried after --dir, MIGRATIONS_DIR and MIGRATIONS_PATH.
var defaultDirs = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string
	root := &cobra.Command{
		Use:           "migration",
		Short:         "Apply or inspect the database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "Migrations directory")

	with := func(fn func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			m, source, err := openMigrator(dir)
			if err != nil {
				return err
			}
			defer closeMigrator(m)
			logger.Debug("migrator ready", "source", source)
			return fn(m, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: with(func(m *migrate.Migrate, _ []string) error {
				if err := noChangeOK(m.Up()); err != nil {
					return err
				}
				return reportVersion(m, "migrations applied")
			}),
		},
		&cobra.Command{
			Use:   "down [STEPS]",
			Short: "Roll back STEPS migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: with(func(m *migrate.Migrate, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(strings.TrimSpace(args[0]))
					if err != nil || n <= 0 {
						return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				if err := noChangeOK(m.Steps(-steps)); err != nil {
					return err
				}
				return reportVersion(m, "migrations rolled back")
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied version and dirty flag",
			Args:  cobra.NoArgs,
			RunE: with(func(m *migrate.Migrate, _ []string) error {
				return reportVersion(m, "schema version")
			}),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the version without running migrations and clear the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: with(func(m *migrate.Migrate, args []string) error {
				version, err := parseVersion(args[0])
				if err != nil {
					return err
				}
				if err := m.Force(int(version)); err != nil {
					return fmt.Errorf("force version %d: %w", version, err)
				}
				return reportVersion(m, "version forced")
			}),
		},
		&cobra.Command{
			Use:     "goto VERSION",
			Aliases: []string{"migrate"},
			Short:   "Migrate up or down to VERSION",
			Args:    cobra.ExactArgs(1),
			RunE: with(func(m *migrate.Migrate, args []string) error {
				version, err := parseVersion(args[0])
				if err != nil {
					return err
				}
				if err := noChangeOK(m.Migrate(version)); err != nil {
					return err
				}
				return reportVersion(m, "migrated")
			}),
		},
	)
	return root
}

func openMigrator(flagDir string) (*migrate.Migrate, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if !cfg.UsesDatabase() {
		return nil, "", errors.New("DB_URL is required")
	}

	dir, err := migrationsDir(flagDir, os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		return nil, "", err
	}
	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, app.NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, source, nil
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

// migrationsDir returns the first existing directory among the explicit
// candidates and the defaults.
func migrationsDir(explicit ...string) (string, error) {
	candidates := append(append([]string{}, explicit...), defaultDirs...)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("no migrations directory found (tried --dir, MIGRATIONS_DIR, MIGRATIONS_PATH, %s)", strings.Join(defaultDirs, ", "))
}

func parseVersion(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize-1)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return uint(v), nil
}

func noChangeOK(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func reportVersion(m *migrate.Migrate, msg string) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info(msg, "version", "none", "dirty", false)
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	logger.Info(msg, "version", version, "dirty", dirty)
	return nil
}
