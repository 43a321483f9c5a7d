package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/team"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

type LineupImportOptions struct {
	Dir     string
	Aliases alias.Map
	DryRun  bool
}

type LineupImportStats struct {
	Matches            int `json:"matches"`
	MissingFiles       int `json:"missing_files"`
	PlayersCreated     int `json:"players_created"`
	AppearancesCreated int `json:"appearances_created"`
	AppearancesSkipped int `json:"appearances_skipped"`
	TeamsUnresolved    int `json:"teams_unresolved"`
}

// LineupImportService records which players took part in finished matches.
type LineupImportService struct {
	matches match.Repository
	teams   team.Repository
	players player.Repository
	source  LineupSource
	logger  *logging.Logger
}

func NewLineupImportService(matches match.Repository, teams team.Repository, players player.Repository, source LineupSource, logger *logging.Logger) *LineupImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupImportService{matches: matches, teams: teams, players: players, source: source, logger: logger}
}

// Import reads <dir>/<match_id>.json for every finished match. Every listed
// player is a starter playing the full match.
func (s *LineupImportService) Import(ctx context.Context, opts LineupImportOptions) (LineupImportStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupImportService.Import")
	defer span.End()

	var stats LineupImportStats
	if strings.TrimSpace(opts.Dir) == "" {
		return stats, fmt.Errorf("%w: lineups dir is required", ErrInvalidInput)
	}
	if s.source == nil {
		return stats, fmt.Errorf("%w: lineup source is not configured", ErrDependencyUnavailable)
	}

	items, err := s.matches.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("list matches: %w", err)
	}

	for _, m := range items {
		if !m.IsFinished() {
			continue
		}
		stats.Matches++

		path := filepath.Join(opts.Dir, m.MatchID+".json")
		lineups, ok, err := s.source.DecodeLineups(ctx, path)
		if err != nil {
			s.logger.WarnContext(ctx, "skip lineup file", "file", path, "error", err)
			stats.MissingFiles++
			continue
		}
		if !ok {
			stats.MissingFiles++
			continue
		}

		if err := s.importMatch(ctx, m, lineups, opts, &stats); err != nil {
			return stats, err
		}
	}

	s.logger.InfoContext(ctx, "lineup import finished",
		"matches", stats.Matches, "missing_files", stats.MissingFiles,
		"players_created", stats.PlayersCreated, "appearances_created", stats.AppearancesCreated,
		"appearances_skipped", stats.AppearancesSkipped, "teams_unresolved", stats.TeamsUnresolved,
		"dry_run", opts.DryRun,
	)
	return stats, nil
}

func (s *LineupImportService) importMatch(ctx context.Context, m match.Match, lineups []ExternalLineup, opts LineupImportOptions, stats *LineupImportStats) error {
	home, away, err := matchSides(ctx, s.teams, m)
	if err != nil {
		return err
	}

	for _, lineup := range lineups {
		teamID, ok := resolveSide(lineup.TeamName, home, away, opts.Aliases)
		if !ok || strings.TrimSpace(lineup.TeamName) == "" {
			stats.TeamsUnresolved++
			s.logger.WarnContext(ctx, "skip lineup of unknown team", "match_id", m.MatchID, "team", lineup.TeamName)
			continue
		}

		for _, entry := range lineup.Players {
			if strings.TrimSpace(entry.ExternalID) == "" || strings.TrimSpace(entry.Name) == "" {
				stats.AppearancesSkipped++
				continue
			}
			if opts.DryRun {
				stats.AppearancesCreated++
				continue
			}

			item, created, err := s.players.Upsert(ctx, player.Player{
				ExternalID: strings.TrimSpace(entry.ExternalID),
				Name:       strings.TrimSpace(entry.Name),
				TeamID:     teamID,
				Position:   strings.TrimSpace(entry.Position),
			})
			if err != nil {
				if IsRejected(err) {
					stats.AppearancesSkipped++
					s.logger.WarnContext(ctx, "skip lineup player", "match_id", m.MatchID, "player_id", entry.ExternalID, "error", err)
					continue
				}
				return fmt.Errorf("upsert player %s: %w", entry.ExternalID, err)
			}
			if created {
				stats.PlayersCreated++
			}

			isNew, err := s.players.UpsertAppearance(ctx, player.Appearance{
				PlayerID:  item.ID,
				MatchID:   m.ID,
				TeamID:    teamID,
				IsStarter: true,
				MinuteOn:  player.DefaultMinuteOn,
				MinuteOff: player.DefaultMinuteOff,
			})
			if err != nil {
				if IsRejected(err) {
					stats.AppearancesSkipped++
					s.logger.WarnContext(ctx, "skip appearance", "match_id", m.MatchID, "player_id", entry.ExternalID, "error_kind", errs.Kind(err), "error", err)
					continue
				}
				return fmt.Errorf("upsert appearance %s: %w", entry.ExternalID, err)
			}
			if isNew {
				stats.AppearancesCreated++
			} else {
				stats.AppearancesSkipped++
			}
		}
	}
	return nil
}

func matchSides(ctx context.Context, teams team.Repository, m match.Match) (team.Team, team.Team, error) {
	home, ok, err := teams.GetByID(ctx, m.HomeTeamID)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("get home team: %w", err)
	}
	if !ok {
		return team.Team{}, team.Team{}, errs.NotFound("match %s home team=%d", m.MatchID, m.HomeTeamID)
	}
	away, ok, err := teams.GetByID(ctx, m.AwayTeamID)
	if err != nil {
		return team.Team{}, team.Team{}, fmt.Errorf("get away team: %w", err)
	}
	if !ok {
		return team.Team{}, team.Team{}, errs.NotFound("match %s away team=%d", m.MatchID, m.AwayTeamID)
	}
	return home, away, nil
}
