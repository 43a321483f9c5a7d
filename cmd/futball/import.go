package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/infrastructure/feed/csvfeed"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/manifest"
	"github.com/riskibarqy/futball/internal/usecase"
)

func importMatchesCmd() *cobra.Command {
	var (
		competitionName string
		country         string
		seasonName      string
		dateFormat      string
		teamMap         string
		matchesJSON     string
		dryRun          bool
	)
	cmd := &cobra.Command{
		Use:   "import-matches PATH...",
		Short: "Import league result CSVs or manifest datasets as finished matches",
		Long: `Import league results. PATH is a results CSV, a dataset directory holding a
datapackage.json/.yaml, or the descriptor itself. Dataset manifests supply
the competition, country, encoding and date format unless flags override them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				aliases, err := loadAliases(teamMap, teamMap != "")
				if err != nil {
					return err
				}

				base := usecase.MatchImportOptions{
					Competition: competitionName,
					Country:     country,
					Season:      seasonName,
					Aliases:     aliases,
					DryRun:      dryRun,
				}
				if dateFormat != "" {
					if base.DateLayout, err = manifest.StrftimeLayout(dateFormat); err != nil {
						return fmt.Errorf("--date-format: %w", err)
					}
				}
				if matchesJSON != "" {
					externals, err := rt.services.Decoder.ReadMatches(ctx, matchesJSON)
					if err != nil {
						return err
					}
					base.Index = usecase.BuildMatchIndex(externals, aliases)
					logger.Info("vendor match index built", "matches", base.Index.Len(), "malformed", base.Index.Malformed())
				}

				for _, path := range args {
					rows, opts, err := readResultRows(cmd, path, base)
					if err != nil {
						return err
					}
					stats, err := rt.services.Matches.ImportRows(ctx, rows, opts)
					if err != nil {
						return fmt.Errorf("import %s: %w", path, err)
					}
					for _, id := range stats.Collisions {
						logger.Warn("match id already used by another fixture", "match_id", id, "file", path)
					}
					if err := printSummary(cmd.OutOrStdout(), "import-matches "+path, dryRun, stats,
						count{label: "rows", value: stats.Rows},
						count{label: "created", value: stats.Created, tone: toneOK},
						count{label: "updated", value: stats.Updated, tone: toneOK},
						count{label: "skipped", value: stats.Skipped, tone: toneWarn},
						count{label: "collisions", value: len(stats.Collisions), tone: toneFail},
					); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&competitionName, "competition", usecase.DefaultCompetitionName, "Competition name")
	cmd.Flags().StringVar(&country, "country", "", "Competition country")
	cmd.Flags().StringVar(&seasonName, "season", usecase.DefaultSeasonName, "Season name")
	cmd.Flags().StringVar(&dateFormat, "date-format", "", "strftime format of the Date column (default %d/%m/%y)")
	cmd.Flags().StringVar(&teamMap, "team-map", "", "Team alias CSV/YAML applied to CSV team names")
	cmd.Flags().StringVar(&matchesJSON, "matches-json", "", "Vendor match list supplying match ids for known fixtures")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report counts without writing")
	return cmd
}

// readResultRows reads a plain CSV directly and anything else through its
// dataset manifest. Flags set explicitly win over manifest values.
func readResultRows(cmd *cobra.Command, path string, base usecase.MatchImportOptions) ([]usecase.ResultRow, usecase.MatchImportOptions, error) {
	opts := base
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, opts, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		rows, err := csvfeed.ReadResults(f)
		if err != nil {
			return nil, opts, fmt.Errorf("%s: %w", path, err)
		}
		return rows, opts, nil
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, opts, err
	}
	ds, err := m.Dataset()
	if err != nil {
		return nil, opts, err
	}
	if !cmd.Flags().Changed("competition") && ds.Competition != "" {
		opts.Competition = ds.Competition
	}
	if !cmd.Flags().Changed("country") && ds.Country != "" {
		opts.Country = ds.Country
	}
	if !cmd.Flags().Changed("date-format") && ds.DateLayout != "" {
		opts.DateLayout = ds.DateLayout
	}
	rows, err := ds.ReadResults()
	if err != nil {
		return nil, opts, err
	}
	logger.Info("dataset manifest loaded", "manifest", m.Path(), "competition", opts.Competition, "csv", ds.CSVPath, "rows", len(rows))
	return rows, opts, nil
}

func importShotsCmd() *cobra.Command {
	var (
		replace  bool
		matchMap string
		teamMap  string
		workers  int
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "import-shots PATH",
		Short: "Import shots from one events file or a directory of them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				aliases, err := loadAliases(orDefault(teamMap, rt.dataPath("shots", "team_map.csv")), teamMap != "")
				if err != nil {
					return err
				}
				opts := usecase.ShotImportOptions{
					Replace: replace,
					DryRun:  dryRun,
					Aliases: aliases,
					Workers: workers,
				}
				if opts.Workers <= 0 {
					opts.Workers = rt.cfg.ImportWorkers
				}
				if matchMap != "" {
					if opts.MatchMap, err = csvfeed.ReadMatchMapFile(matchMap); err != nil {
						return err
					}
				}

				totals, err := rt.services.Shots.ImportFiles(ctx, args[0], opts)
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), "import-shots", dryRun, totals,
					count{label: "files", value: totals.Files},
					count{label: "files skipped", value: totals.FilesSkipped, tone: toneWarn},
					count{label: "events", value: totals.Events},
					count{label: "shots created", value: totals.Created, tone: toneOK},
					count{label: "shots skipped", value: totals.Skipped, tone: toneWarn},
				)
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete a match's existing shots before importing")
	cmd.Flags().StringVar(&matchMap, "match-map", "", "CSV mapping statsbomb_match_id to match_id")
	cmd.Flags().StringVar(&teamMap, "team-map", "", "Team alias file (default DATA_DIR/shots/team_map.csv when present)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Decode workers (default IMPORT_WORKERS)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report counts without writing")
	return cmd
}

func importLineupsCmd() *cobra.Command {
	var (
		dir     string
		teamMap string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "import-lineups",
		Short: "Import starting lineups for finished matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				aliases, err := loadAliases(orDefault(teamMap, rt.dataPath("shots", "team_map.csv")), teamMap != "")
				if err != nil {
					return err
				}
				stats, err := rt.services.Lineups.Import(ctx, usecase.LineupImportOptions{
					Dir:     orDefault(dir, rt.dataPath("shots", "lineups")),
					Aliases: aliases,
					DryRun:  dryRun,
				})
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), "import-lineups", dryRun, stats,
					count{label: "matches", value: stats.Matches},
					count{label: "missing files", value: stats.MissingFiles, tone: toneWarn},
					count{label: "players created", value: stats.PlayersCreated, tone: toneOK},
					count{label: "appearances created", value: stats.AppearancesCreated, tone: toneOK},
					count{label: "appearances skipped", value: stats.AppearancesSkipped, tone: toneWarn},
					count{label: "teams unresolved", value: stats.TeamsUnresolved, tone: toneFail},
				)
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Lineup files directory (default DATA_DIR/shots/lineups)")
	cmd.Flags().StringVar(&teamMap, "team-map", "", "Team alias file (default DATA_DIR/shots/team_map.csv when present)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report counts without writing")
	return cmd
}
