// Package cache decorates record store repositories with read-through TTL
// caching for the API's season reads. Writes pass through and drop the
// affected keys.
package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
	basecache "github.com/riskibarqy/futball/internal/platform/cache"
)

const (
	keyCompetitions = "competition:list"
	prefixSeason    = "season:"
	keyTeams        = "team:list"
)

func seasonKey(seasonID int64, what string) string {
	return prefixSeason + strconv.FormatInt(seasonID, 10) + ":" + what
}

func cloned[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

type CompetitionRepository struct {
	competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{Repository: next, cache: cache}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	return cloned(basecache.Load(ctx, r.cache, keyCompetitions, func(ctx context.Context) ([]competition.Competition, error) {
		return cloned(r.Repository.List(ctx))
	}))
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) (competition.Competition, error) {
	defer r.cache.Invalidate(keyCompetitions)
	return r.Repository.Create(ctx, item)
}

func (r *CompetitionRepository) Merge(ctx context.Context, sourceID, targetID int64) error {
	defer r.cache.Invalidate("")
	return r.Repository.Merge(ctx, sourceID, targetID)
}

type SeasonRepository struct {
	season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{Repository: next, cache: cache}
}

func (r *SeasonRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]season.Season, error) {
	key := "competition:" + strconv.FormatInt(competitionID, 10) + ":seasons"
	return cloned(basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]season.Season, error) {
		return cloned(r.Repository.ListByCompetition(ctx, competitionID))
	}))
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) (season.Season, error) {
	defer r.cache.Invalidate("competition:")
	return r.Repository.Create(ctx, item)
}

func (r *SeasonRepository) Merge(ctx context.Context, sourceID, targetID int64) error {
	defer r.cache.Invalidate("")
	return r.Repository.Merge(ctx, sourceID, targetID)
}

type TeamRepository struct {
	team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{Repository: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return cloned(basecache.Load(ctx, r.cache, keyTeams, func(ctx context.Context) ([]team.Team, error) {
		return cloned(r.Repository.List(ctx))
	}))
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	defer r.cache.Invalidate(keyTeams)
	return r.Repository.Create(ctx, item)
}

func (r *TeamRepository) Merge(ctx context.Context, sourceID, targetID int64) error {
	defer r.cache.Invalidate("")
	return r.Repository.Merge(ctx, sourceID, targetID)
}

type MatchRepository struct {
	match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{Repository: next, cache: cache}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	return cloned(basecache.Load(ctx, r.cache, seasonKey(seasonID, "matches"), func(ctx context.Context) ([]match.Match, error) {
		return cloned(r.Repository.ListBySeason(ctx, seasonID))
	}))
}

func (r *MatchRepository) ListTeamStatsBySeason(ctx context.Context, seasonID int64) ([]match.TeamStats, error) {
	return cloned(basecache.Load(ctx, r.cache, seasonKey(seasonID, "team_stats"), func(ctx context.Context) ([]match.TeamStats, error) {
		return cloned(r.Repository.ListTeamStatsBySeason(ctx, seasonID))
	}))
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	defer r.cache.Invalidate(seasonKey(item.SeasonID, ""))
	return r.Repository.Create(ctx, item)
}

// Update may move the match to another season, so every season is dropped.
func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	defer r.cache.Invalidate(prefixSeason)
	return r.Repository.Update(ctx, item)
}

func (r *MatchRepository) UpsertTeamStats(ctx context.Context, items []match.TeamStats) error {
	defer r.cache.Invalidate(prefixSeason)
	return r.Repository.UpsertTeamStats(ctx, items)
}

type ShotRepository struct {
	shot.Repository
	cache *basecache.Store
}

func NewShotRepository(next shot.Repository, cache *basecache.Store) *ShotRepository {
	return &ShotRepository{Repository: next, cache: cache}
}

func (r *ShotRepository) ListBySeason(ctx context.Context, seasonID int64) ([]shot.Shot, error) {
	return cloned(basecache.Load(ctx, r.cache, seasonKey(seasonID, "shots"), func(ctx context.Context) ([]shot.Shot, error) {
		return cloned(r.Repository.ListBySeason(ctx, seasonID))
	}))
}

func (r *ShotRepository) InsertBatch(ctx context.Context, matchID int64, items []shot.Shot) (int, error) {
	defer r.cache.Invalidate(prefixSeason)
	return r.Repository.InsertBatch(ctx, matchID, items)
}

func (r *ShotRepository) ReplaceByMatch(ctx context.Context, matchID int64, items []shot.Shot) (int, error) {
	defer r.cache.Invalidate(prefixSeason)
	return r.Repository.ReplaceByMatch(ctx, matchID, items)
}
