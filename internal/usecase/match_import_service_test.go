package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/match"
)

func TestMatchImportService_RedBlueScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, repos := newTestStore(t, false)
	service := NewMatchImportService(newTestResolver(store), store.Matches(), testLogger)

	rows := []ResultRow{{
		Line: 2, Date: "01/05/24", HomeTeam: "Red", AwayTeam: "Blue",
		HomeGoals: intPtr(2), AwayGoals: intPtr(1),
		HomeShots: intPtr(10), HomeShotsOnTarget: intPtr(4),
		AwayShots: intPtr(8), AwayShotsOnTarget: intPtr(2),
	}}

	stats, err := service.ImportRows(ctx, rows, MatchImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, MatchImportStats{Rows: 1, Created: 1}, stats)

	m, ok, err := store.Matches().GetByMatchID(ctx, "01/05/24-Red-Blue")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, match.StatusFinished, m.Status)
	assert.Equal(t, 2024, m.MatchDate.Year())
	assert.Equal(t, 5, int(m.MatchDate.Month()))
	assert.Equal(t, 1, m.MatchDate.Day())

	stats2, err := repos.Matches.ListTeamStatsBySeason(ctx, m.SeasonID)
	require.NoError(t, err)
	require.Len(t, stats2, 2)
	byTeam := map[int64]match.TeamStats{}
	for _, row := range stats2 {
		byTeam[row.TeamID] = row
	}
	assert.InDelta(t, 1.68, byTeam[m.HomeTeamID].XG, 1e-9)
	assert.InDelta(t, 1.08, byTeam[m.AwayTeamID].XG, 1e-9)

	table, err := NewStandingsService(repos).Table(ctx, m.SeasonID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Red", table[0].TeamName)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 1, table[0].GoalDifference)
	assert.Equal(t, "Blue", table[1].TeamName)
	assert.Equal(t, 0, table[1].Points)
	assert.Equal(t, -1, table[1].GoalDifference)

	again, err := service.ImportRows(ctx, rows, MatchImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, MatchImportStats{Rows: 1, Skipped: 1}, again)

	matches, err := store.Matches().List(ctx)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestMatchImportService_SkipsBadRowsAndUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, false)
	service := NewMatchImportService(newTestResolver(store), store.Matches(), testLogger)
	opts := MatchImportOptions{
		Competition: "Bundesliga",
		Season:      "2023/2024",
		DateLayout:  "02/01/2006",
		Aliases:     alias.Build([]alias.Row{{External: "Bayern Munich", Canonical: "Bayern München"}}),
	}

	rows := []ResultRow{
		{Line: 2, Date: "18/08/2023", HomeTeam: "Werder Bremen", AwayTeam: "Bayern Munich", HomeGoals: intPtr(0), AwayGoals: intPtr(4)},
		{Line: 3, Date: "2023-08-19", HomeTeam: "Augsburg", AwayTeam: "Gladbach", HomeGoals: intPtr(4), AwayGoals: intPtr(4)},
		{Line: 4, Date: "19/08/2023", HomeTeam: "", AwayTeam: "Gladbach", HomeGoals: intPtr(1), AwayGoals: intPtr(0)},
		{Line: 5, Date: "19/08/2023", HomeTeam: "Mainz", AwayTeam: "Mainz", HomeGoals: intPtr(1), AwayGoals: intPtr(1)},
		{Line: 6, Date: "19/08/2023", HomeTeam: "Hoffenheim", AwayTeam: "Freiburg", HomeGoals: nil, AwayGoals: intPtr(2)},
		{Line: 7, Malformed: `bare " in non-quoted field`},
	}

	stats, err := service.ImportRows(ctx, rows, opts)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Rows)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 5, stats.Skipped)

	bayern, ok, err := store.Teams().GetByName(ctx, "Bayern München")
	require.NoError(t, err)
	assert.True(t, ok)

	rows[0].AwayGoals = intPtr(3)
	preview, err := service.ImportRows(ctx, rows[:1], MatchImportOptions{
		Competition: opts.Competition, Season: opts.Season, DateLayout: opts.DateLayout, Aliases: opts.Aliases, DryRun: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, preview.Updated)

	updated, err := service.ImportRows(ctx, rows[:1], opts)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Updated)

	m, ok, err := store.Matches().GetByMatchID(ctx, "18/08/2023-Werder Bremen-Bayern Munich")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, bayern.ID, m.AwayTeamID)
	assert.Equal(t, 3, *m.AwayScore)
}

func TestMatchImportService_FlagsFallbackIDCollision(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, false)
	service := NewMatchImportService(newTestResolver(store), store.Matches(), testLogger)

	first := ResultRow{Line: 2, Date: "01/05/24", HomeTeam: "Red", AwayTeam: "Blue", HomeGoals: intPtr(1), AwayGoals: intPtr(0)}
	_, err := service.ImportRows(ctx, []ResultRow{first}, MatchImportOptions{})
	require.NoError(t, err)

	// Same synthesized id, but the alias now points Red at another club.
	stats, err := service.ImportRows(ctx, []ResultRow{first}, MatchImportOptions{
		Aliases: alias.Build([]alias.Row{{External: "Red", Canonical: "Red Star"}}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, []string{"01/05/24-Red-Blue"}, stats.Collisions)
}
