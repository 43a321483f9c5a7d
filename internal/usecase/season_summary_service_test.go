package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/season"
)

func newTestSummaryService(repos SeasonRepositories) *SeasonSummaryService {
	return NewSeasonSummaryService(repos, NewStandingsService(repos), NewXGService(repos))
}

func TestSeasonSummaryService_Summary(t *testing.T) {
	t.Parallel()

	store, repos := newTestStore(t, true)
	seasonID := demoSeasonID(t, store)

	got, err := newTestSummaryService(repos).Summary(context.Background(), seasonID)
	require.NoError(t, err)

	assert.Equal(t, "Premier League", got.Competition)
	assert.Equal(t, "2024/2025", got.Season)
	assert.Equal(t, 3, got.FinishedMatches)
	assert.Equal(t, 4, got.Goals)
	assert.Equal(t, 1.33, got.GoalsPerMatch)
	assert.Equal(t, "Liverpool", got.Leader)
	assert.Equal(t, TeamMetric{Team: "Arsenal", Value: 0.91}, got.TopAttack)
	assert.Equal(t, TeamMetric{Team: "Liverpool", Value: 0.32}, got.BestDefence)
	assert.Len(t, got.Top, 3)
	assert.Len(t, got.Bottom, 3)
	assert.Equal(t, "Wolverhampton Wanderers", got.Bottom[2].TeamName)
}

func TestSeasonSummaryService_EmptySeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, repos := newTestStore(t, false)
	comp, err := store.Competitions().Create(ctx, competition.Competition{Name: "Eredivisie"})
	require.NoError(t, err)
	item, err := store.Seasons().Create(ctx, season.Season{CompetitionID: comp.ID, Name: "2024/2025"})
	require.NoError(t, err)

	got, err := newTestSummaryService(repos).Summary(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FinishedMatches)
	assert.Equal(t, 0.0, got.GoalsPerMatch)
	assert.Equal(t, "-", got.Leader)
	assert.Equal(t, "-", got.TopAttack.Team)
	assert.Empty(t, got.Top)

	_, err = newTestSummaryService(repos).Summary(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSeasonSummaryService_ShotMap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, repos := newTestStore(t, true)
	seasonID := demoSeasonID(t, store)
	arsenal, _, err := store.Teams().GetByName(ctx, "Arsenal")
	require.NoError(t, err)

	service := newTestSummaryService(repos)
	all, err := service.ShotMap(ctx, seasonID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	mine, err := service.ShotMap(ctx, seasonID, arsenal.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, p := range mine {
		assert.Equal(t, arsenal.ID, p.TeamID)
	}

	_, err = service.ShotMap(ctx, 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCatalogService_DefaultSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, repos := newTestStore(t, true)
	catalog := NewCatalogService(repos)

	comp, ok, err := store.Competitions().GetByName(ctx, "Premier League")
	require.NoError(t, err)
	require.True(t, ok)
	_, err = store.Seasons().Create(ctx, season.Season{CompetitionID: comp.ID, Name: "2025/2026"})
	require.NoError(t, err)
	_, err = store.Competitions().Create(ctx, competition.Competition{Name: "Serie A"})
	require.NoError(t, err)

	competitions, err := catalog.Competitions(ctx)
	require.NoError(t, err)
	require.Len(t, competitions, 2)
	assert.Equal(t, "Premier League", competitions[0].Name)

	got, ok, err := catalog.DefaultSeason(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, demoSeasonID(t, store), got.ID)

	seasons, err := catalog.Seasons(ctx, comp.ID)
	require.NoError(t, err)
	assert.Len(t, seasons, 2)

	_, ok, err = NewCatalogService(SeasonRepositories{
		Competitions: memoryEmptyCompetitions(t),
	}).DefaultSeason(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func memoryEmptyCompetitions(t *testing.T) competition.Repository {
	t.Helper()

	store, _ := newTestStore(t, false)
	return store.Competitions()
}
