package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/csvfeed"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/manifest"
	"github.com/riskibarqy/futball/internal/usecase"
)

func teamMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team-map",
		Short: "Team alias map tooling",
	}
	cmd.AddCommand(teamMapGenerateCmd())
	return cmd
}

func teamMapGenerateCmd() *cobra.Command {
	var (
		matchesJSON string
		out         string
		threshold   float64
		strategy    string
		withScore   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Suggest local team names for every vendor team name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				externals, err := rt.services.Decoder.ReadMatches(ctx, orDefault(matchesJSON, rt.dataPath("shots", "matches.json")))
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("threshold") {
					threshold = rt.cfg.TeamMapThreshold
				}
				similarity := naming.SimilarityByName(strategy)
				rows, err := rt.services.TeamMap.Generate(ctx, externals, similarity, threshold)
				if err != nil {
					return err
				}

				path := orDefault(out, rt.dataPath("shots", "team_map.csv"))
				if err := writeWith(path, func(w io.Writer) error { return csvfeed.WriteTeamMap(w, rows, withScore) }); err != nil {
					return err
				}

				unmatched := 0
				for _, r := range rows {
					if r.Suggested == "" {
						unmatched++
						logger.Warn("no local team above threshold", "statsbomb_name", r.External, "best_score", fmt.Sprintf("%.3f", r.Score))
					}
				}
				logger.Info("team map written", "path", path, "strategy", similarity.Name(), "threshold", threshold)
				return printSummary(cmd.OutOrStdout(), "team-map generate", false, rows,
					count{label: "vendor teams", value: len(rows)},
					count{label: "suggested", value: len(rows) - unmatched, tone: toneOK},
					count{label: "no suggestion", value: unmatched, tone: toneWarn},
				)
			})
		},
	}
	cmd.Flags().StringVar(&matchesJSON, "matches-json", "", "Merged vendor match list (default DATA_DIR/shots/matches.json)")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV (default DATA_DIR/shots/team_map.csv)")
	cmd.Flags().Float64Var(&threshold, "threshold", naming.DefaultThreshold, "Minimum similarity for a suggestion (default TEAM_MAP_THRESHOLD)")
	cmd.Flags().StringVar(&strategy, "strategy", "sequence", "Similarity strategy: sequence or levenshtein")
	cmd.Flags().BoolVar(&withScore, "with-score", false, "Add a score column")
	return cmd
}

func matchMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match-map",
		Short: "Vendor match id map tooling",
	}
	cmd.AddCommand(matchMapGenerateCmd())
	return cmd
}

func matchMapGenerateCmd() *cobra.Command {
	var (
		vendor     vendorFlags
		out        string
		dateFormat string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write statsbomb_match_id,match_id rows using the CSV import match ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOpenData(func(ctx context.Context, env *openDataEnv) error {
				aliases, err := loadAliases(orDefault(vendor.teamMap, env.dataPath("shots", "team_map.csv")), vendor.teamMap != "")
				if err != nil {
					return err
				}
				externals, err := env.decoder.ReadMatches(ctx, orDefault(vendor.matchesJSON, env.dataPath("shots", "matches.json")))
				if err != nil {
					return err
				}
				layout := usecase.DefaultResultDateLayout
				if dateFormat != "" {
					if layout, err = manifest.StrftimeLayout(dateFormat); err != nil {
						return fmt.Errorf("--date-format: %w", err)
					}
				}

				rows := usecase.BuildMatchMap(externals, aliases, layout)
				if err := writeWith(out, func(w io.Writer) error { return csvfeed.WriteMatchMap(w, rows) }); err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), "match-map generate", false, rows,
					count{label: "vendor matches", value: len(externals)},
					count{label: "rows written", value: len(rows), tone: toneOK},
					count{label: "left out", value: len(externals) - len(rows), tone: toneWarn},
				)
			})
		},
	}
	vendor.register(cmd)
	cmd.Flags().StringVar(&out, "out", "match_map.csv", "Output CSV")
	cmd.Flags().StringVar(&dateFormat, "date-format", "", "strftime format the CSV import used for Date (default %d/%m/%y)")
	return cmd
}

func writeWith(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
