package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/team"
)

// ISODate is the date layout of vendor match lists and index keys.
const ISODate = "2006-01-02"

// EntityResolver finds canonical records for external names, creating them
// on first reference.
type EntityResolver struct {
	competitions competition.Repository
	seasons      season.Repository
	teams        team.Repository
}

func NewEntityResolver(competitions competition.Repository, seasons season.Repository, teams team.Repository) *EntityResolver {
	return &EntityResolver{competitions: competitions, seasons: seasons, teams: teams}
}

// FindOrCreateCompetition reports whether the competition was created by this
// call. A concurrent creator winning the unique key is resolved to its row.
func (r *EntityResolver) FindOrCreateCompetition(ctx context.Context, name string) (competition.Competition, bool, error) {
	return r.FindOrCreateCompetitionIn(ctx, name, "")
}

// FindOrCreateCompetitionIn sets country on a newly created competition; an
// existing row keeps its own.
func (r *EntityResolver) FindOrCreateCompetitionIn(ctx context.Context, name, country string) (competition.Competition, bool, error) {
	name = naming.Clean(name)
	if name == "" {
		return competition.Competition{}, false, errs.Input("competition name is required")
	}
	return findOrCreate(ctx, "competition "+name,
		func(ctx context.Context) (competition.Competition, bool, error) {
			return r.competitions.GetByName(ctx, name)
		},
		func(ctx context.Context) (competition.Competition, error) {
			return r.competitions.Create(ctx, competition.Competition{Name: name, Country: naming.Clean(country)})
		},
	)
}

func (r *EntityResolver) FindOrCreateSeason(ctx context.Context, competitionID int64, name string) (season.Season, bool, error) {
	name = naming.Clean(name)
	if name == "" {
		return season.Season{}, false, errs.Input("season name is required")
	}
	return findOrCreate(ctx, "season "+name,
		func(ctx context.Context) (season.Season, bool, error) {
			return r.seasons.GetByCompetitionAndName(ctx, competitionID, name)
		},
		func(ctx context.Context) (season.Season, error) {
			return r.seasons.Create(ctx, season.Season{CompetitionID: competitionID, Name: name})
		},
	)
}

func (r *EntityResolver) FindOrCreateTeam(ctx context.Context, name string) (team.Team, bool, error) {
	name = naming.Clean(name)
	if name == "" {
		return team.Team{}, false, errs.Input("team name is required")
	}
	return findOrCreate(ctx, "team "+name,
		func(ctx context.Context) (team.Team, bool, error) { return r.teams.GetByName(ctx, name) },
		func(ctx context.Context) (team.Team, error) { return r.teams.Create(ctx, team.Team{Name: name}) },
	)
}

// LookupTeam is the read-only half of FindOrCreateTeam, used by dry runs.
func (r *EntityResolver) LookupTeam(ctx context.Context, name string) (team.Team, bool, error) {
	item, ok, err := r.teams.GetByName(ctx, naming.Clean(name))
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return item, ok, nil
}

func findOrCreate[T any](
	ctx context.Context,
	what string,
	get func(context.Context) (T, bool, error),
	create func(context.Context) (T, error),
) (T, bool, error) {
	var zero T
	item, ok, err := get(ctx)
	if err != nil {
		return zero, false, fmt.Errorf("get %s: %w", what, err)
	}
	if ok {
		return item, false, nil
	}

	item, err = create(ctx)
	if err == nil {
		return item, true, nil
	}
	if !errors.Is(err, errs.ErrDuplicateKey) {
		return zero, false, fmt.Errorf("create %s: %w", what, err)
	}

	item, ok, getErr := get(ctx)
	if getErr != nil {
		return zero, false, fmt.Errorf("get %s after duplicate key: %w", what, getErr)
	}
	if !ok {
		return zero, false, fmt.Errorf("create %s: %w", what, err)
	}
	return item, false, nil
}

// BuildAliasIndex indexes external to canonical name rows; rows with an
// empty side are ignored.
func BuildAliasIndex(rows []alias.Row) alias.Map {
	return alias.Build(rows)
}

// MatchIndex maps (ISO date, normalized home, normalized away) to a vendor
// match id. It is built once per run from the whole vendor list.
type MatchIndex struct {
	aliases   alias.Map
	byKey     map[string]string
	collided  []string
	malformed int
}

// BuildMatchIndex applies aliases to both team names before keying. Entries
// with an unparseable date are counted and left out; the first vendor match
// wins a key collision.
func BuildMatchIndex(matches []ExternalMatch, aliases alias.Map) *MatchIndex {
	idx := &MatchIndex{aliases: aliases, byKey: make(map[string]string, len(matches))}
	for _, m := range matches {
		if m.MatchID == "" || m.HomeTeam == "" || m.AwayTeam == "" {
			idx.malformed++
			continue
		}
		date, err := time.Parse(ISODate, m.MatchDate)
		if err != nil {
			idx.malformed++
			continue
		}
		key := idx.key(date, m.HomeTeam, m.AwayTeam)
		if existing, ok := idx.byKey[key]; ok {
			if existing != m.MatchID {
				idx.collided = append(idx.collided, m.MatchID)
			}
			continue
		}
		idx.byKey[key] = m.MatchID
	}
	return idx
}

func (idx *MatchIndex) key(date time.Time, home, away string) string {
	return MatchKey(date, idx.aliases.Canonical(home), idx.aliases.Canonical(away))
}

// MatchKey composes the index key from already canonical names.
func MatchKey(date time.Time, home, away string) string {
	return date.Format(ISODate) + "|" + naming.Normalize(home) + "|" + naming.Normalize(away)
}

// Resolve returns the vendor match id for the fixture, if any.
func (idx *MatchIndex) Resolve(date time.Time, home, away string) (string, bool) {
	if idx == nil {
		return "", false
	}
	id, ok := idx.byKey[idx.key(date, home, away)]
	return id, ok
}

func (idx *MatchIndex) Len() int       { return len(idx.byKey) }
func (idx *MatchIndex) Malformed() int { return idx.malformed }

// Collisions lists vendor ids that shared a key with an earlier entry.
func (idx *MatchIndex) Collisions() []string {
	return append([]string(nil), idx.collided...)
}

// SynthesizeMatchID builds the fallback key from the raw date text and the
// cleaned team names. It shares a key space with vendor ids.
func SynthesizeMatchID(rawDate, home, away string) string {
	return naming.Clean(rawDate) + "-" + naming.Clean(home) + "-" + naming.Clean(away)
}

// ResolveOrSynthesizeMatchID prefers the vendor id and falls back to the
// synthesized key. The bool reports whether the vendor id was found.
func ResolveOrSynthesizeMatchID(idx *MatchIndex, rawDate string, date time.Time, home, away string) (string, bool) {
	if id, ok := idx.Resolve(date, home, away); ok {
		return id, true
	}
	return SynthesizeMatchID(rawDate, home, away), false
}
