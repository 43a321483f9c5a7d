package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

const (
	DefaultCompetitionName = "Premier League"
	DefaultSeasonName      = "2024/2025"
	// DefaultResultDateLayout is %d/%m/%y.
	DefaultResultDateLayout = "02/01/06"
)

type MatchImportOptions struct {
	Competition string
	Country     string
	Season      string
	DateLayout  string
	Aliases     alias.Map
	// Index, when set, supplies vendor match ids for known fixtures.
	Index  *MatchIndex
	DryRun bool
}

func (o MatchImportOptions) withDefaults() MatchImportOptions {
	if naming.Clean(o.Competition) == "" {
		o.Competition = DefaultCompetitionName
	}
	if naming.Clean(o.Season) == "" {
		o.Season = DefaultSeasonName
	}
	if o.DateLayout == "" {
		o.DateLayout = DefaultResultDateLayout
	}
	return o
}

type MatchImportStats struct {
	Rows    int `json:"rows"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	// Collisions lists synthesized ids that already belong to a different
	// fixture. Those rows are skipped.
	Collisions []string `json:"collisions,omitempty"`
}

// MatchImportService loads league result rows as finished matches with a
// proxy expected-goals row per side.
type MatchImportService struct {
	resolver *EntityResolver
	matches  match.Repository
	logger   *logging.Logger
}

func NewMatchImportService(resolver *EntityResolver, matches match.Repository, logger *logging.Logger) *MatchImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchImportService{resolver: resolver, matches: matches, logger: logger}
}

// ImportRows is idempotent: a second run over the same rows creates nothing
// and updates nothing.
func (s *MatchImportService) ImportRows(ctx context.Context, rows []ResultRow, opts MatchImportOptions) (MatchImportStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.ImportRows")
	defer span.End()

	opts = opts.withDefaults()
	stats := MatchImportStats{Rows: len(rows)}

	var seasonID int64
	if !opts.DryRun {
		comp, _, err := s.resolver.FindOrCreateCompetitionIn(ctx, opts.Competition, opts.Country)
		if err != nil {
			return stats, err
		}
		item, _, err := s.resolver.FindOrCreateSeason(ctx, comp.ID, opts.Season)
		if err != nil {
			return stats, err
		}
		seasonID = item.ID
	}

	for _, row := range rows {
		outcome, matchID, err := s.importRow(ctx, row, seasonID, opts)
		switch {
		case err == nil:
		case errors.Is(err, errs.ErrDuplicateKey):
			stats.Skipped++
			stats.Collisions = append(stats.Collisions, matchID)
			s.logger.WarnContext(ctx, "skip result row, match id collides", "line", row.Line, "error", err)
			continue
		case IsRejected(err):
			stats.Skipped++
			s.logger.WarnContext(ctx, "skip result row", "line", row.Line, "error_kind", errs.Kind(err), "error", err)
			continue
		default:
			return stats, fmt.Errorf("import result line %d: %w", row.Line, err)
		}

		switch outcome {
		case rowCreated:
			stats.Created++
		case rowUpdated:
			stats.Updated++
		default:
			stats.Skipped++
		}
	}

	s.logger.InfoContext(ctx, "result import finished",
		"competition", opts.Competition, "season", opts.Season, "rows", stats.Rows,
		"created", stats.Created, "updated", stats.Updated, "skipped", stats.Skipped,
		"collisions", len(stats.Collisions), "dry_run", opts.DryRun,
	)
	return stats, nil
}

type rowOutcome int

const (
	rowUnchanged rowOutcome = iota
	rowCreated
	rowUpdated
)

func (s *MatchImportService) importRow(ctx context.Context, row ResultRow, seasonID int64, opts MatchImportOptions) (rowOutcome, string, error) {
	if row.Malformed != "" {
		return rowUnchanged, "", errs.Input("line %d: malformed csv: %s", row.Line, row.Malformed)
	}
	homeName := opts.Aliases.Canonical(row.HomeTeam)
	awayName := opts.Aliases.Canonical(row.AwayTeam)
	if homeName == "" || awayName == "" {
		return rowUnchanged, "", errs.Input("line %d: home and away team are required", row.Line)
	}
	if row.HomeGoals == nil || row.AwayGoals == nil {
		return rowUnchanged, "", errs.Input("line %d: full time goals are required", row.Line)
	}
	date, err := time.Parse(opts.DateLayout, naming.Clean(row.Date))
	if err != nil {
		return rowUnchanged, "", errs.Input("line %d: parse date %q with layout %q: %v", row.Line, row.Date, opts.DateLayout, err)
	}

	matchID, _ := ResolveOrSynthesizeMatchID(opts.Index, row.Date, date, row.HomeTeam, row.AwayTeam)
	existing, found, err := s.matches.GetByMatchID(ctx, matchID)
	if err != nil {
		return rowUnchanged, matchID, fmt.Errorf("get match %s: %w", matchID, err)
	}

	if opts.DryRun {
		return s.previewRow(ctx, row, existing, found, date, homeName, awayName)
	}

	home, _, err := s.resolver.FindOrCreateTeam(ctx, homeName)
	if err != nil {
		return rowUnchanged, matchID, err
	}
	away, _, err := s.resolver.FindOrCreateTeam(ctx, awayName)
	if err != nil {
		return rowUnchanged, matchID, err
	}

	if found && (existing.HomeTeamID != home.ID || existing.AwayTeamID != away.ID) {
		return rowUnchanged, matchID, errs.DuplicateKey("line %d: match_id %s already belongs to match=%d", row.Line, matchID, existing.ID)
	}

	item := match.Match{
		ID:                existing.ID,
		MatchID:           matchID,
		SeasonID:          seasonID,
		HomeTeamID:        home.ID,
		AwayTeamID:        away.ID,
		MatchDate:         date,
		Status:            match.StatusFinished,
		HomeScore:         row.HomeGoals,
		AwayScore:         row.AwayGoals,
		HomeShots:         row.HomeShots,
		AwayShots:         row.AwayShots,
		HomeShotsOnTarget: row.HomeShotsOnTarget,
		AwayShotsOnTarget: row.AwayShotsOnTarget,
	}

	outcome := rowUnchanged
	switch {
	case !found:
		created, err := s.matches.Create(ctx, item)
		if err != nil {
			return rowUnchanged, matchID, fmt.Errorf("create match %s: %w", matchID, err)
		}
		item = created
		outcome = rowCreated
	case !sameResult(existing, item):
		if err := s.matches.Update(ctx, item); err != nil {
			return rowUnchanged, matchID, fmt.Errorf("update match %s: %w", matchID, err)
		}
		outcome = rowUpdated
	}

	if err := s.matches.UpsertTeamStats(ctx, proxyTeamStats(item)); err != nil {
		return outcome, matchID, fmt.Errorf("upsert team stats %s: %w", matchID, err)
	}
	return outcome, matchID, nil
}

// previewRow decides what a live run would do without creating teams. The
// season is taken from the stored match since a dry run resolves none.
func (s *MatchImportService) previewRow(ctx context.Context, row ResultRow, existing match.Match, found bool, date time.Time, homeName, awayName string) (rowOutcome, string, error) {
	if !found {
		return rowCreated, existing.MatchID, nil
	}
	home, homeOK, err := s.resolver.LookupTeam(ctx, homeName)
	if err != nil {
		return rowUnchanged, existing.MatchID, err
	}
	away, awayOK, err := s.resolver.LookupTeam(ctx, awayName)
	if err != nil {
		return rowUnchanged, existing.MatchID, err
	}
	if !homeOK || !awayOK {
		return rowUpdated, existing.MatchID, nil
	}
	if existing.HomeTeamID != home.ID || existing.AwayTeamID != away.ID {
		return rowUnchanged, existing.MatchID, errs.DuplicateKey("line %d: match_id %s already belongs to match=%d", row.Line, existing.MatchID, existing.ID)
	}

	candidate := existing
	candidate.MatchDate = date
	candidate.Status = match.StatusFinished
	candidate.HomeScore, candidate.AwayScore = row.HomeGoals, row.AwayGoals
	candidate.HomeShots, candidate.AwayShots = row.HomeShots, row.AwayShots
	candidate.HomeShotsOnTarget, candidate.AwayShotsOnTarget = row.HomeShotsOnTarget, row.AwayShotsOnTarget
	if sameResult(existing, candidate) {
		return rowUnchanged, existing.MatchID, nil
	}
	return rowUpdated, existing.MatchID, nil
}

// proxyTeamStats builds one stats row per side from the match's shot counts.
func proxyTeamStats(m match.Match) []match.TeamStats {
	side := func(teamID int64, shots, onTarget *int) match.TeamStats {
		total, target := intValue(shots), intValue(onTarget)
		if total < target {
			total = target
		}
		return match.TeamStats{
			MatchID:       m.ID,
			TeamID:        teamID,
			XG:            match.ProxyXG(total, target),
			Shots:         total,
			ShotsOnTarget: target,
		}
	}
	return []match.TeamStats{
		side(m.HomeTeamID, m.HomeShots, m.HomeShotsOnTarget),
		side(m.AwayTeamID, m.AwayShots, m.AwayShotsOnTarget),
	}
}

func sameResult(a, b match.Match) bool {
	return a.SeasonID == b.SeasonID &&
		a.HomeTeamID == b.HomeTeamID &&
		a.AwayTeamID == b.AwayTeamID &&
		a.MatchDate.Equal(b.MatchDate) &&
		match.NormalizeStatus(a.Status) == match.NormalizeStatus(b.Status) &&
		equalIntPtr(a.HomeScore, b.HomeScore) &&
		equalIntPtr(a.AwayScore, b.AwayScore) &&
		equalIntPtr(a.HomeShots, b.HomeShots) &&
		equalIntPtr(a.AwayShots, b.AwayShots) &&
		equalIntPtr(a.HomeShotsOnTarget, b.HomeShotsOnTarget) &&
		equalIntPtr(a.AwayShotsOnTarget, b.AwayShotsOnTarget)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
