package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/usecase"
)

// seasonFlags pick a season by id, by competition and season name, or fall
// back to the default season.
type seasonFlags struct {
	seasonID        int64
	competitionName string
	seasonName      string
}

func (f *seasonFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.seasonID, "season-id", 0, "Season id")
	cmd.Flags().StringVar(&f.competitionName, "competition", "", "Competition name")
	cmd.Flags().StringVar(&f.seasonName, "season", "", "Season name (with --competition)")
}

func (f *seasonFlags) resolve(ctx context.Context, rt *runtime) (season.Season, error) {
	switch {
	case f.seasonID > 0:
		item, ok, err := rt.repos.Seasons.GetByID(ctx, f.seasonID)
		if err != nil {
			return season.Season{}, err
		}
		if !ok {
			return season.Season{}, fmt.Errorf("%w: season=%d", usecase.ErrNotFound, f.seasonID)
		}
		return item, nil
	case f.competitionName != "":
		comp, ok, err := rt.repos.Competitions.GetByName(ctx, f.competitionName)
		if err != nil {
			return season.Season{}, err
		}
		if !ok {
			return season.Season{}, fmt.Errorf("%w: competition %q", usecase.ErrNotFound, f.competitionName)
		}
		if f.seasonName == "" {
			return season.Season{}, fmt.Errorf("%w: --season is required with --competition", usecase.ErrInvalidInput)
		}
		item, ok, err := rt.repos.Seasons.GetByCompetitionAndName(ctx, comp.ID, f.seasonName)
		if err != nil {
			return season.Season{}, err
		}
		if !ok {
			return season.Season{}, fmt.Errorf("%w: season %q of %s", usecase.ErrNotFound, f.seasonName, comp.Name)
		}
		return item, nil
	default:
		item, ok, err := rt.services.Catalog.DefaultSeason(ctx)
		if err != nil {
			return season.Season{}, err
		}
		if !ok {
			return season.Season{}, fmt.Errorf("%w: no season has been imported", usecase.ErrNotFound)
		}
		return item, nil
	}
}

func standingsCmd() *cobra.Command {
	var sel seasonFlags
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print a season's league table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				ssn, err := sel.resolve(ctx, rt)
				if err != nil {
					return err
				}
				table, err := rt.services.Standings.Table(ctx, ssn.ID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), table)
				}

				w := cmd.OutOrStdout()
				titleColor.Fprintf(w, "standings %s (season id %d)\n", ssn.Name, ssn.ID)
				tw := newTable(w, "#", "TEAM", "P", "W", "D", "L", "GF", "GA", "GD", "PTS", "ZONE")
				for _, r := range table {
					row(tw, r.Position, r.TeamName, r.Played, r.Won, r.Draw, r.Lost, r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points, r.Zone)
				}
				return tw.Flush()
			})
		},
	}
	sel.register(cmd)
	return cmd
}

func xgCmd() *cobra.Command {
	var sel seasonFlags
	cmd := &cobra.Command{
		Use:   "xg",
		Short: "Print a season's expected-goals for and against per team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				ssn, err := sel.resolve(ctx, rt)
				if err != nil {
					return err
				}
				rows, err := rt.services.XG.Summaries(ctx, ssn.ID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), rows)
				}

				w := cmd.OutOrStdout()
				titleColor.Fprintf(w, "xg %s (season id %d)\n", ssn.Name, ssn.ID)
				tw := newTable(w, "TEAM", "MATCHES", "XGF", "XGA", "XGF/M", "XGA/M")
				for _, r := range rows {
					row(tw, r.TeamName, r.Matches, fmt.Sprintf("%.2f", r.XGFor), fmt.Sprintf("%.2f", r.XGAgainst),
						fmt.Sprintf("%.2f", r.XGForAvg), fmt.Sprintf("%.2f", r.XGAgainstAvg))
				}
				return tw.Flush()
			})
		},
	}
	sel.register(cmd)
	return cmd
}

func summaryCmd() *cobra.Command {
	var sel seasonFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a season overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				ssn, err := sel.resolve(ctx, rt)
				if err != nil {
					return err
				}
				summary, err := rt.services.Summary.Summary(ctx, ssn.ID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), summary)
				}

				w := cmd.OutOrStdout()
				titleColor.Fprintf(w, "%s %s\n", summary.Competition, summary.Season)
				fmt.Fprintf(w, "  finished matches: %d\n", summary.FinishedMatches)
				fmt.Fprintf(w, "  goals:            %d (%.2f per match)\n", summary.Goals, summary.GoalsPerMatch)
				fmt.Fprintf(w, "  leader:           %s\n", okColor.Sprint(summary.Leader))
				fmt.Fprintf(w, "  top attack:       %s (%.2f xg)\n", summary.TopAttack.Team, summary.TopAttack.Value)
				fmt.Fprintf(w, "  best defence:     %s (%.2f xga)\n", summary.BestDefence.Team, summary.BestDefence.Value)
				return nil
			})
		},
	}
	sel.register(cmd)
	return cmd
}
