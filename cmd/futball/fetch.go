package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/app"
	"github.com/riskibarqy/futball/internal/config"
	feed "github.com/riskibarqy/futball/internal/infrastructure/feed/statsbomb"
	"github.com/riskibarqy/futball/internal/usecase"
)

// openDataEnv runs the download commands, which never touch the record
// store.
type openDataEnv struct {
	cfg     config.Config
	service *usecase.OpenDataService
	decoder *feed.Decoder
}

func (e *openDataEnv) dataPath(parts ...string) string {
	return filepath.Join(append([]string{e.cfg.DataDir}, parts...)...)
}

func withOpenData(fn func(ctx context.Context, env *openDataEnv) error) error {
	return withConfig(func(ctx context.Context, cfg config.Config) error {
		decoder := feed.NewDecoder()
		return fn(ctx, &openDataEnv{
			cfg:     cfg,
			service: usecase.NewOpenDataService(app.NewOpenDataClient(cfg, logger), decoder, logger),
			decoder: decoder,
		})
	})
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download files from the StatsBomb open-data mirror",
		Long: `Download from STATSBOMB_BASE_URL, an http(s) mirror or a local open-data
checkout. Files land under DATA_DIR/shots unless --out says otherwise.`,
	}
	cmd.AddCommand(fetchIndexCmd())
	cmd.AddCommand(fetchMatchesCmd())
	cmd.AddCommand(fetchFilesCmd(usecase.DatasetEvents))
	cmd.AddCommand(fetchFilesCmd(usecase.DatasetLineups))
	return cmd
}

func fetchIndexCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Download competitions.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOpenData(func(ctx context.Context, env *openDataEnv) error {
				data, seasons, err := env.service.Competitions(ctx)
				if err != nil {
					return err
				}
				path := orDefault(out, env.dataPath("shots", "competitions.json"))
				if err := writeFile(path, data); err != nil {
					return err
				}
				logger.Info("competition index saved", "path", path, "seasons", len(seasons))
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), seasons)
				}
				tw := newTable(cmd.OutOrStdout(), "COMPETITION_ID", "SEASON_ID", "COMPETITION", "SEASON", "COUNTRY")
				for _, s := range seasons {
					row(tw, s.CompetitionID, s.SeasonID, s.CompetitionName, s.SeasonName, s.CountryName)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output file (default DATA_DIR/shots/competitions.json)")
	return cmd
}

func fetchMatchesCmd() *cobra.Command {
	var (
		leagues string
		out     string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Build one merged matches.json from every index season of the given leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOpenData(func(ctx context.Context, env *openDataEnv) error {
				result, err := env.service.BuildMatchList(ctx, leagueSlugs(leagues))
				if err != nil {
					return err
				}
				path := orDefault(out, env.dataPath("shots", "matches.json"))
				if !dryRun {
					if err := writeFile(path, result.Data); err != nil {
						return err
					}
					logger.Info("merged match list saved", "path", path, "matches", result.Matches)
				}
				return printLeagueSeasons(cmd, "fetch matches", result)
			})
		},
	}
	cmd.Flags().StringVar(&leagues, "leagues", "", "Comma separated league slugs (default all known leagues)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default DATA_DIR/shots/matches.json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Collect without writing the merged file")
	return cmd
}

func fetchFilesCmd(dataset usecase.OpenDataDataset) *cobra.Command {
	var (
		matchesJSON  string
		outDir       string
		skipExisting bool
		limit        int
		workers      int
		dryRun       bool
	)
	cmd := &cobra.Command{
		Use:   string(dataset),
		Short: fmt.Sprintf("Download %s/<match_id>.json for every match in matches.json", dataset),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOpenData(func(ctx context.Context, env *openDataEnv) error {
				externals, err := env.decoder.ReadMatches(ctx, orDefault(matchesJSON, env.dataPath("shots", "matches.json")))
				if err != nil {
					return err
				}
				if workers <= 0 {
					workers = env.cfg.ImportWorkers
				}
				stats, err := env.service.FetchFiles(ctx, usecase.MatchIDs(externals), usecase.FetchFilesOptions{
					Dataset:      dataset,
					OutDir:       orDefault(outDir, env.dataPath("shots", string(dataset))),
					SkipExisting: skipExisting,
					Limit:        limit,
					DryRun:       dryRun,
					Workers:      workers,
				})
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), "fetch "+string(dataset), dryRun, stats,
					count{label: "requested", value: stats.Requested},
					count{label: "downloaded", value: stats.Downloaded, tone: toneOK},
					count{label: "skipped", value: stats.Skipped},
					count{label: "missing upstream", value: stats.Missing, tone: toneWarn},
				)
			})
		},
	}
	cmd.Flags().StringVar(&matchesJSON, "matches-json", "", "Merged vendor match list (default DATA_DIR/shots/matches.json)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", fmt.Sprintf("Destination directory (default DATA_DIR/shots/%s)", dataset))
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Skip files already present")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum matches to download (0 = all)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent downloads (default IMPORT_WORKERS)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be downloaded")
	return cmd
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
