package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/team"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

const DefaultUnmatchedLimit = 50

type SyncOptions struct {
	// Aliases maps vendor team names to local ones.
	Aliases alias.Map
	// CompetitionAliases maps vendor competition titles to local ones.
	CompetitionAliases alias.Map
	DryRun             bool
}

type BackfillStats struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Invalid int `json:"invalid"`
}

type MatchIDUpdateStats struct {
	Checked   int `json:"checked"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Conflicts int `json:"conflicts"`
	// Malformed counts vendor entries left out of the index.
	Malformed int `json:"malformed"`
}

type UnmatchedResult struct {
	Total int             `json:"total"`
	Items []ExternalMatch `json:"items"`
}

// StatsBombSyncService reconciles a vendor match list with local matches.
type StatsBombSyncService struct {
	resolver *EntityResolver
	matches  match.Repository
	teams    team.Repository
	logger   *logging.Logger
}

func NewStatsBombSyncService(resolver *EntityResolver, matches match.Repository, teams team.Repository, logger *logging.Logger) *StatsBombSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsBombSyncService{resolver: resolver, matches: matches, teams: teams, logger: logger}
}

// Backfill creates finished local matches for vendor matches whose match_id
// is not stored yet. Incomplete entries and unparseable dates are skipped.
func (s *StatsBombSyncService) Backfill(ctx context.Context, externals []ExternalMatch, opts SyncOptions) (BackfillStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsBombSyncService.Backfill")
	defer span.End()

	stats := BackfillStats{Total: len(externals)}
	for _, ext := range externals {
		if !ext.Complete() {
			stats.Invalid++
			s.logger.WarnContext(ctx, "skip incomplete vendor match", "match_id", ext.MatchID)
			continue
		}

		_, exists, err := s.matches.GetByMatchID(ctx, ext.MatchID)
		if err != nil {
			return stats, fmt.Errorf("get match %s: %w", ext.MatchID, err)
		}
		if exists {
			stats.Skipped++
			continue
		}

		date, err := time.Parse(ISODate, ext.MatchDate)
		if err != nil {
			stats.Invalid++
			s.logger.WarnContext(ctx, "skip vendor match with bad date", "match_id", ext.MatchID, "match_date", ext.MatchDate)
			continue
		}

		if opts.DryRun {
			stats.Created++
			continue
		}

		err = s.createFromExternal(ctx, ext, date, opts)
		switch {
		case err == nil:
			stats.Created++
		case errors.Is(err, errs.ErrDuplicateKey):
			stats.Skipped++
		case IsRejected(err):
			stats.Skipped++
			s.logger.WarnContext(ctx, "skip vendor match", "match_id", ext.MatchID, "error_kind", errs.Kind(err), "error", err)
		default:
			return stats, err
		}
	}

	s.logger.InfoContext(ctx, "backfill finished",
		"total", stats.Total, "created", stats.Created, "skipped", stats.Skipped, "invalid", stats.Invalid, "dry_run", opts.DryRun,
	)
	return stats, nil
}

func (s *StatsBombSyncService) createFromExternal(ctx context.Context, ext ExternalMatch, date time.Time, opts SyncOptions) error {
	comp, _, err := s.resolver.FindOrCreateCompetition(ctx, opts.CompetitionAliases.Canonical(ext.Competition))
	if err != nil {
		return err
	}
	item, _, err := s.resolver.FindOrCreateSeason(ctx, comp.ID, ext.Season)
	if err != nil {
		return err
	}
	home, _, err := s.resolver.FindOrCreateTeam(ctx, opts.Aliases.Canonical(ext.HomeTeam))
	if err != nil {
		return err
	}
	away, _, err := s.resolver.FindOrCreateTeam(ctx, opts.Aliases.Canonical(ext.AwayTeam))
	if err != nil {
		return err
	}

	_, err = s.matches.Create(ctx, match.Match{
		MatchID:    ext.MatchID,
		SeasonID:   item.ID,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		MatchDate:  date,
		Status:     match.StatusFinished,
		HomeScore:  ext.HomeScore,
		AwayScore:  ext.AwayScore,
	})
	if err != nil {
		return fmt.Errorf("create match %s: %w", ext.MatchID, err)
	}
	return nil
}

// UpdateMatchIDs rewrites local match_id values to the vendor id of the same
// fixture. A rewrite onto an id held by another match is skipped.
func (s *StatsBombSyncService) UpdateMatchIDs(ctx context.Context, externals []ExternalMatch, opts SyncOptions) (MatchIDUpdateStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsBombSyncService.UpdateMatchIDs")
	defer span.End()

	idx := BuildMatchIndex(externals, opts.Aliases)
	stats := MatchIDUpdateStats{Malformed: idx.Malformed()}
	for _, id := range idx.Collisions() {
		s.logger.WarnContext(ctx, "vendor fixture listed twice, first id kept", "match_id", id)
	}

	locals, names, err := s.localMatches(ctx)
	if err != nil {
		return stats, err
	}

	for _, local := range locals {
		stats.Checked++
		externalID, ok := idx.Resolve(local.MatchDate, names[local.HomeTeamID], names[local.AwayTeamID])
		if !ok || externalID == local.MatchID {
			stats.Skipped++
			continue
		}
		if opts.DryRun {
			stats.Updated++
			continue
		}

		updated := local
		updated.MatchID = externalID
		err := s.matches.Update(ctx, updated)
		switch {
		case err == nil:
			stats.Updated++
		case errors.Is(err, errs.ErrDuplicateKey):
			stats.Skipped++
			stats.Conflicts++
			s.logger.WarnContext(ctx, "skip match id rewrite, id already taken", "from", local.MatchID, "to", externalID)
		default:
			return stats, fmt.Errorf("update match %s: %w", local.MatchID, err)
		}
	}

	s.logger.InfoContext(ctx, "match id update finished",
		"checked", stats.Checked, "updated", stats.Updated, "skipped", stats.Skipped,
		"conflicts", stats.Conflicts, "malformed", stats.Malformed, "dry_run", opts.DryRun,
	)
	return stats, nil
}

// ListUnmatched returns vendor matches with no local fixture on the same day
// between the same teams, in vendor order, at most limit of them.
func (s *StatsBombSyncService) ListUnmatched(ctx context.Context, externals []ExternalMatch, aliases alias.Map, limit int) (UnmatchedResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsBombSyncService.ListUnmatched")
	defer span.End()

	if limit <= 0 {
		limit = DefaultUnmatchedLimit
	}

	locals, names, err := s.localMatches(ctx)
	if err != nil {
		return UnmatchedResult{}, err
	}
	known := make(map[string]struct{}, len(locals))
	for _, local := range locals {
		known[MatchKey(local.MatchDate, aliases.Canonical(names[local.HomeTeamID]), aliases.Canonical(names[local.AwayTeamID]))] = struct{}{}
	}

	result := UnmatchedResult{Items: make([]ExternalMatch, 0)}
	for _, ext := range externals {
		date, err := time.Parse(ISODate, ext.MatchDate)
		if err != nil || ext.HomeTeam == "" || ext.AwayTeam == "" {
			continue
		}
		if _, ok := known[MatchKey(date, aliases.Canonical(ext.HomeTeam), aliases.Canonical(ext.AwayTeam))]; ok {
			continue
		}
		result.Total++
		if len(result.Items) < limit {
			result.Items = append(result.Items, ext)
		}
	}
	return result, nil
}

func (s *StatsBombSyncService) localMatches(ctx context.Context) ([]match.Match, map[int64]string, error) {
	locals, err := s.matches.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list matches: %w", err)
	}
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams: %w", err)
	}
	names := make(map[int64]string, len(teams))
	for _, item := range teams {
		names[item.ID] = item.Name
	}
	return locals, names, nil
}
