package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/infrastructure/feed/manifest"
	"github.com/riskibarqy/futball/internal/usecase"
)

func mergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Fold duplicate competitions, seasons or teams into one record",
	}
	cmd.AddCommand(mergeCompetitionsCmd())
	cmd.AddCommand(mergeTeamsCmd())
	cmd.AddCommand(mergeSeasonsCmd())
	cmd.AddCommand(mergeIDsCmd())
	return cmd
}

func mergeCompetitionsCmd() *cobra.Command {
	var (
		mapping string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "competitions",
		Short: "Merge vendor competition titles into canonical titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				pairs := alias.DefaultCompetitionRows()
				if mapping != "" {
					rows, err := manifest.LoadAliases(mapping)
					if err != nil {
						return err
					}
					pairs = rows
				}
				result, err := rt.services.Merge.MergeByNames(ctx, usecase.MergeKindCompetition, pairs, dryRun)
				if err != nil {
					return err
				}
				return printMergeResult(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&mapping, "map", "", "YAML or CSV mapping replacing the built-in title table")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report decisions without writing")
	return cmd
}

func mergeTeamsCmd() *cobra.Command {
	var (
		mapping string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Merge vendor team names into local team names from a team map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				rows, err := manifest.LoadAliases(orDefault(mapping, rt.dataPath("shots", "team_map.csv")))
				if err != nil {
					return err
				}
				result, err := rt.services.Merge.MergeByNames(ctx, usecase.MergeKindTeam, rows, dryRun)
				if err != nil {
					return err
				}
				return printMergeResult(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&mapping, "map", "", "statsbomb_name,csv_name CSV (default DATA_DIR/shots/team_map.csv)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report decisions without writing")
	return cmd
}

func mergeSeasonsCmd() *cobra.Command {
	var (
		competitionName string
		dryRun          bool
	)
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Merge seasons of a competition whose names denote the same season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(func(ctx context.Context, rt *runtime) error {
				result, err := rt.services.Merge.MergeDuplicateSeasons(ctx, competitionName, dryRun)
				if err != nil {
					return err
				}
				return printMergeResult(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&competitionName, "competition", "", "Limit to one competition name (exact)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report decisions without writing")
	return cmd
}

func mergeIDsCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "ids KIND SOURCE_ID TARGET_ID",
		Short: "Merge one record into another by id (KIND is competition, season or team)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := usecase.ParseMergeKind(args[0])
			if err != nil {
				return err
			}
			sourceID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("source id %q: %w", args[1], err)
			}
			targetID, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("target id %q: %w", args[2], err)
			}
			return withServices(func(ctx context.Context, rt *runtime) error {
				pair, err := rt.services.Merge.Merge(ctx, kind, sourceID, targetID, dryRun)
				if err != nil {
					return err
				}
				result := usecase.MergeResult{Kind: kind, DryRun: dryRun}
				result.Add(pair)
				return printMergeResult(cmd, result)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the decision without writing")
	return cmd
}

func printMergeResult(cmd *cobra.Command, result usecase.MergeResult) error {
	if err := printSummary(cmd.OutOrStdout(), "merge "+string(result.Kind), result.DryRun, result,
		count{label: "merged", value: result.Merged, tone: toneOK},
		count{label: "created", value: result.Created, tone: toneOK},
		count{label: "skipped", value: result.Skipped, tone: toneWarn},
		count{label: "failed", value: result.Failed, tone: toneFail},
	); err != nil || jsonOutput {
		return err
	}

	w := cmd.OutOrStdout()
	for _, pair := range result.Pairs {
		decisions := make([]string, 0, len(pair.Decisions))
		for _, d := range pair.Decisions {
			decisions = append(decisions, string(d))
		}
		line := fmt.Sprintf("  %s -> %s: %s", pair.Source, pair.Target, strings.Join(decisions, ", "))
		if pair.Reason != "" {
			line += " (" + pair.Reason + ")"
		}
		dimColor.Fprintln(w, line)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d merge(s) failed", result.Failed)
	}
	return nil
}
