// Command futball runs the batch side of the reconciliation engine: feed
// imports, vendor id reconciliation, merges, open-data downloads and season
// reports.
//
// Usage:
//
//	futball import-matches data/match/premier-league
//	futball import-shots data/shots/events --match-map match_map.csv --replace
//	futball fetch matches --leagues premier-league,la-liga
//	futball merge competitions --dry-run
//	futball standings --competition "Premier League" --season 2024/2025
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/app"
	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/manifest"
	"github.com/riskibarqy/futball/internal/observability"
	"github.com/riskibarqy/futball/internal/platform/id"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

var (
	logger = logging.NewConsole(logging.LevelInfo)
	runIDs = id.NewRunIDs("cli-")
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "futball",
		Short:         "Football data reconciliation and aggregation CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	root.AddCommand(importMatchesCmd())
	root.AddCommand(importShotsCmd())
	root.AddCommand(importLineupsCmd())
	root.AddCommand(backfillMatchesCmd())
	root.AddCommand(updateMatchIDsCmd())
	root.AddCommand(listUnmatchedCmd())
	root.AddCommand(verifySeasonsCmd())
	root.AddCommand(mergeCmd())
	root.AddCommand(teamMapCmd())
	root.AddCommand(matchMapCmd())
	root.AddCommand(fetchCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(xgCmd())
	root.AddCommand(summaryCmd())
	return root
}

type runtime struct {
	cfg      config.Config
	repos    *app.Repositories
	services *app.Services
}

// dataPath resolves a path below DATA_DIR.
func (rt *runtime) dataPath(parts ...string) string {
	return filepath.Join(append([]string{rt.cfg.DataDir}, parts...)...)
}

// withConfig loads configuration and the console logger and runs fn under a
// context cancelled on interrupt.
func withConfig(fn func(ctx context.Context, cfg config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = logging.NewConsole(cfg.LogLevel).With("run_id", runIDs.NewID())
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(flushCtx); err != nil {
			logger.Warn("stop telemetry", "error", err)
		}
	}()

	return fn(ctx, cfg)
}

// withServices additionally opens the record store.
func withServices(fn func(ctx context.Context, rt *runtime) error) error {
	return withConfig(func(ctx context.Context, cfg config.Config) error {
		repos, err := app.OpenRepositories(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("open record store: %w", err)
		}
		defer func() {
			if err := repos.Close(); err != nil {
				logger.Warn("close record store", "error", err)
			}
		}()
		if !cfg.UsesDatabase() {
			logger.Warn("DB_URL is not set, running against the in-memory store; writes end with the process")
		}

		return fn(ctx, &runtime{cfg: cfg, repos: repos, services: app.NewServices(repos, cfg, logger)})
	})
}

// loadAliases reads an alias file. A missing file at the default location
// is not an error; an explicitly requested one is.
func loadAliases(path string, explicit bool) (alias.Map, error) {
	if path == "" {
		return alias.Map{}, nil
	}
	rows, err := manifest.LoadAliases(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Info("alias file not found, continuing without aliases", "path", path)
			return alias.Map{}, nil
		}
		return alias.Map{}, fmt.Errorf("load aliases: %w", err)
	}
	return alias.Build(rows), nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
