package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/usecase"
)

// vendorFlags are shared by the commands that read the merged vendor match
// list.
type vendorFlags struct {
	matchesJSON string
	teamMap     string
}

func (f *vendorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.matchesJSON, "matches-json", "", "Merged vendor match list (default DATA_DIR/shots/matches.json)")
	cmd.Flags().StringVar(&f.teamMap, "team-map", "", "Team alias file (default DATA_DIR/shots/team_map.csv when present)")
}

func (f *vendorFlags) load(ctx context.Context, rt *runtime) ([]usecase.ExternalMatch, alias.Map, error) {
	aliases, err := loadAliases(orDefault(f.teamMap, rt.dataPath("shots", "team_map.csv")), f.teamMap != "")
	if err != nil {
		return nil, alias.Map{}, err
	}
	externals, err := rt.services.Decoder.ReadMatches(ctx, orDefault(f.matchesJSON, rt.dataPath("shots", "matches.json")))
	if err != nil {
		return nil, alias.Map{}, err
	}
	return externals, aliases, nil
}

func backfillMatchesCmd() *cobra.Command {
	var (
		vendor         vendorFlags
		competitionMap string
		dryRun         bool
	)
	cmd := &cobra.Command{
		Use:   "backfill-matches",
		Short: "Create local matches for vendor matches not stored yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				externals, aliases, err := vendor.load(ctx, rt)
				if err != nil {
					return err
				}
				competitions, err := competitionAliases(competitionMap)
				if err != nil {
					return err
				}
				stats, err := rt.services.StatsBomb.Backfill(ctx, externals, usecase.SyncOptions{
					Aliases:            aliases,
					CompetitionAliases: competitions,
					DryRun:             dryRun,
				})
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), "backfill-matches", dryRun, stats,
					count{label: "vendor matches", value: stats.Total},
					count{label: "created", value: stats.Created, tone: toneOK},
					count{label: "skipped", value: stats.Skipped, tone: toneWarn},
					count{label: "invalid", value: stats.Invalid, tone: toneFail},
				)
			})
		},
	}
	vendor.register(cmd)
	cmd.Flags().StringVar(&competitionMap, "competition-map", "", "Competition alias file replacing the built-in table")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report counts without writing")
	return cmd
}

// competitionAliases loads the mapping file, or the built-in title table
// without one.
func competitionAliases(path string) (alias.Map, error) {
	if path == "" {
		return alias.Build(alias.DefaultCompetitionRows()), nil
	}
	return loadAliases(path, true)
}

func updateMatchIDsCmd() *cobra.Command {
	var (
		vendor vendorFlags
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "update-match-ids",
		Short: "Rewrite local match ids to the vendor ids of the same fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				externals, aliases, err := vendor.load(ctx, rt)
				if err != nil {
					return err
				}
				stats, err := rt.services.StatsBomb.UpdateMatchIDs(ctx, externals, usecase.SyncOptions{Aliases: aliases, DryRun: dryRun})
				if err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), "update-match-ids", dryRun, stats,
					count{label: "checked", value: stats.Checked},
					count{label: "updated", value: stats.Updated, tone: toneOK},
					count{label: "skipped", value: stats.Skipped},
					count{label: "conflicts", value: stats.Conflicts, tone: toneFail},
					count{label: "malformed vendor rows", value: stats.Malformed, tone: toneWarn},
				)
			})
		},
	}
	vendor.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report counts without writing")
	return cmd
}

func listUnmatchedCmd() *cobra.Command {
	var (
		vendor vendorFlags
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list-unmatched",
		Short: "List vendor matches with no local fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				externals, aliases, err := vendor.load(ctx, rt)
				if err != nil {
					return err
				}
				result, err := rt.services.StatsBomb.ListUnmatched(ctx, externals, aliases, limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), result)
				}

				w := cmd.OutOrStdout()
				titleColor.Fprintf(w, "unmatched vendor matches: %d\n", result.Total)
				tw := newTable(w, "MATCH_ID", "DATE", "HOME", "AWAY", "COMPETITION", "SEASON")
				for _, item := range result.Items {
					row(tw, item.MatchID, item.MatchDate, item.HomeTeam, item.AwayTeam, item.Competition, item.Season)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				if hidden := result.Total - len(result.Items); hidden > 0 {
					dimColor.Fprintf(w, "... %d more\n", hidden)
				}
				return nil
			})
		},
	}
	vendor.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", usecase.DefaultUnmatchedLimit, "Maximum rows to print")
	return cmd
}

func verifySeasonsCmd() *cobra.Command {
	var leagues string
	cmd := &cobra.Command{
		Use:   "verify-seasons",
		Short: "Report which open-data index seasons have a match list for each league",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOpenData(func(ctx context.Context, env *openDataEnv) error {
				result, err := env.service.VerifySeasons(ctx, leagueSlugs(leagues))
				if err != nil {
					return err
				}
				return printLeagueSeasons(cmd, "verify-seasons", result)
			})
		},
	}
	cmd.Flags().StringVar(&leagues, "leagues", "", "Comma separated league slugs (default all known leagues)")
	return cmd
}

func leagueSlugs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, league := range competition.Leagues() {
		out = append(out, league.Slug)
	}
	return out
}

func printLeagueSeasons(cmd *cobra.Command, title string, result usecase.MatchListResult) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	w := cmd.OutOrStdout()
	titleColor.Fprintln(w, title)
	tw := newTable(w, "LEAGUE", "TITLE", "SEASONS", "MATCHES", "MISSING")
	for _, league := range result.Leagues {
		row(tw, league.Slug, league.Title, strings.Join(league.Seasons, ", "), league.Matches, league.MissingFiles)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, slug := range result.Unknown {
		warnColor.Fprintf(w, "unknown league slug: %s\n", slug)
	}
	return nil
}
