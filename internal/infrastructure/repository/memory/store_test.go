package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
)

type fixture struct {
	store  *Store
	comp   competition.Competition
	season season.Season
	home   team.Team
	away   team.Team
	match  match.Match
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	store := NewStore()
	comp, err := store.Competitions().Create(ctx, competition.Competition{Name: "Premier League"})
	require.NoError(t, err)
	ssn, err := store.Seasons().Create(ctx, season.Season{CompetitionID: comp.ID, Name: "2024/2025"})
	require.NoError(t, err)
	home, err := store.Teams().Create(ctx, team.Team{Name: "Arsenal"})
	require.NoError(t, err)
	away, err := store.Teams().Create(ctx, team.Team{Name: "Chelsea"})
	require.NoError(t, err)
	m, err := store.Matches().Create(ctx, match.Match{
		MatchID:    "m-1",
		SeasonID:   ssn.ID,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		MatchDate:  time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC),
		Status:     "Finished",
	})
	require.NoError(t, err)

	return fixture{store: store, comp: comp, season: ssn, home: home, away: away, match: m}
}

func TestCreate_DuplicateNamesRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Teams().Create(ctx, team.Team{Name: "Arsenal"})
	assert.ErrorIs(t, err, errs.ErrDuplicateKey)

	variant, err := f.store.Teams().Create(ctx, team.Team{Name: "ARSENAL"})
	require.NoError(t, err)
	assert.NotZero(t, variant.ID)

	_, err = f.store.Competitions().Create(ctx, competition.Competition{Name: "Premier League"})
	assert.ErrorIs(t, err, errs.ErrDuplicateKey)

	_, err = f.store.Seasons().Create(ctx, season.Season{CompetitionID: f.comp.ID, Name: "2024/2025"})
	assert.ErrorIs(t, err, errs.ErrDuplicateKey)

	_, err = f.store.Seasons().Create(ctx, season.Season{CompetitionID: 999, Name: "2024/2025"})
	assert.ErrorIs(t, err, errs.ErrReferential)
}

func TestMatchCreate_NormalizesStatusAndChecksKeys(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	assert.Equal(t, match.StatusFinished, f.match.Status)

	dup := f.match
	dup.ID = 0
	_, err := f.store.Matches().Create(ctx, dup)
	assert.ErrorIs(t, err, errs.ErrDuplicateKey)

	same := f.match
	same.ID = 0
	same.MatchID = "m-2"
	same.AwayTeamID = same.HomeTeamID
	_, err = f.store.Matches().Create(ctx, same)
	assert.ErrorIs(t, err, errs.ErrReferential)

	missing := f.match
	missing.ID = 0
	missing.MatchID = "m-3"
	missing.AwayTeamID = 12345
	_, err = f.store.Matches().Create(ctx, missing)
	assert.ErrorIs(t, err, errs.ErrReferential)
}

func TestMatchUpdate_RenamesMatchID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	updated := f.match
	updated.MatchID = "3888701"
	require.NoError(t, f.store.Matches().Update(ctx, updated))

	got, ok, err := f.store.Matches().GetByMatchID(ctx, "3888701")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.match.ID, got.ID)

	_, ok, err = f.store.Matches().GetByMatchID(ctx, "m-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShotInsertBatch_AllOrNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	batch := []shot.Shot{
		{MatchID: f.match.ID, TeamID: f.home.ID, Minute: 10, X: 100, Y: 40, XG: 0.2, Outcome: shot.OutcomeGoal},
		{MatchID: f.match.ID, TeamID: f.away.ID, Minute: 20, X: 130, Y: 40, XG: 0.1, Outcome: shot.OutcomeSaved},
	}
	n, err := f.store.Shots().InsertBatch(ctx, f.match.ID, batch)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, errs.ErrTransaction)
	assert.ErrorIs(t, err, errs.ErrReferential)

	count, err := f.store.Shots().CountByMatch(ctx, f.match.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	batch[1].X = 110
	n, err = f.store.Shots().InsertBatch(ctx, f.match.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := f.store.Shots().ListByMatch(ctx, f.match.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsGoal)
	assert.False(t, got[1].IsGoal)
}

func TestShotInsertBatch_RejectsForeignTeam(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	other, err := f.store.Teams().Create(ctx, team.Team{Name: "Everton"})
	require.NoError(t, err)

	_, err = f.store.Shots().InsertBatch(ctx, f.match.ID, []shot.Shot{
		{MatchID: f.match.ID, TeamID: other.ID, Minute: 10, X: 100, Y: 40, XG: 0.2, Outcome: shot.OutcomeSaved},
	})
	assert.ErrorIs(t, err, errs.ErrReferential)
}

func TestShotReplaceByMatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	first := []shot.Shot{
		{MatchID: f.match.ID, TeamID: f.home.ID, Minute: 1, X: 100, Y: 40, XG: 0.2, Outcome: shot.OutcomeSaved},
		{MatchID: f.match.ID, TeamID: f.home.ID, Minute: 2, X: 100, Y: 40, XG: 0.2, Outcome: shot.OutcomeSaved},
	}
	_, err := f.store.Shots().InsertBatch(ctx, f.match.ID, first)
	require.NoError(t, err)

	n, err := f.store.Shots().ReplaceByMatch(ctx, f.match.ID, first[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := f.store.Shots().CountByMatch(ctx, f.match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTeamMerge_RepointsEverything(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	dup, err := f.store.Teams().Create(ctx, team.Team{Name: "Chelsea FC"})
	require.NoError(t, err)
	other, err := f.store.Teams().Create(ctx, team.Team{Name: "Everton"})
	require.NoError(t, err)
	m2, err := f.store.Matches().Create(ctx, match.Match{
		MatchID: "m-2", SeasonID: f.season.ID, HomeTeamID: dup.ID, AwayTeamID: other.ID,
		MatchDate: time.Date(2024, 8, 24, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Matches().UpsertTeamStats(ctx, []match.TeamStats{
		{MatchID: m2.ID, TeamID: dup.ID, XG: 1.2, Shots: 10, ShotsOnTarget: 4},
	}))
	_, err = f.store.Shots().InsertBatch(ctx, m2.ID, []shot.Shot{
		{MatchID: m2.ID, TeamID: dup.ID, Minute: 5, X: 100, Y: 40, XG: 0.3, Outcome: shot.OutcomeGoal},
	})
	require.NoError(t, err)
	p, _, err := f.store.Players().Upsert(ctx, player.Player{ExternalID: "p-1", Name: "Cole Palmer", TeamID: dup.ID})
	require.NoError(t, err)

	require.NoError(t, f.store.Teams().Merge(ctx, dup.ID, f.away.ID))

	_, ok, err := f.store.Teams().GetByID(ctx, dup.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, _, err := f.store.Matches().GetByID(ctx, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, f.away.ID, got.HomeTeamID)

	stats, err := f.store.Matches().ListTeamStatsBySeason(ctx, f.season.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, f.away.ID, stats[0].TeamID)

	shots, err := f.store.Shots().ListByMatch(ctx, m2.ID)
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.Equal(t, f.away.ID, shots[0].TeamID)

	gotPlayer, _, err := f.store.Players().GetByExternalID(ctx, p.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, f.away.ID, gotPlayer.TeamID)
}

func TestTeamMerge_RejectsSameSidedMatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	checkErr := f.store.Teams().CheckMerge(ctx, f.home.ID, f.away.ID)
	require.Error(t, checkErr)
	assert.ErrorIs(t, checkErr, errs.ErrTransaction)
	assert.ErrorIs(t, checkErr, errs.ErrReferential)

	err := f.store.Teams().Merge(ctx, f.home.ID, f.away.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransaction)
	assert.ErrorIs(t, err, errs.ErrReferential)
	assert.Equal(t, checkErr.Error(), err.Error())

	_, ok, err := f.store.Teams().GetByID(ctx, f.home.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, _, err := f.store.Matches().GetByID(ctx, f.match.ID)
	require.NoError(t, err)
	assert.Equal(t, f.home.ID, got.HomeTeamID)
}

func TestCompetitionMerge_FoldsSameNamedSeason(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	dup, err := f.store.Competitions().Create(ctx, competition.Competition{Name: "English Premier League"})
	require.NoError(t, err)
	sameName, err := f.store.Seasons().Create(ctx, season.Season{CompetitionID: dup.ID, Name: "2024/2025"})
	require.NoError(t, err)
	older, err := f.store.Seasons().Create(ctx, season.Season{CompetitionID: dup.ID, Name: "2023/2024"})
	require.NoError(t, err)
	moved := f.match
	moved.ID = 0
	moved.MatchID = "m-9"
	moved.SeasonID = sameName.ID
	moved, err = f.store.Matches().Create(ctx, moved)
	require.NoError(t, err)

	require.NoError(t, f.store.Competitions().Merge(ctx, dup.ID, f.comp.ID))

	seasons, err := f.store.Seasons().ListByCompetition(ctx, f.comp.ID)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, f.season.ID, seasons[0].ID)
	assert.Equal(t, older.ID, seasons[1].ID)

	got, _, err := f.store.Matches().GetByID(ctx, moved.ID)
	require.NoError(t, err)
	assert.Equal(t, f.season.ID, got.SeasonID)

	_, ok, err := f.store.Competitions().GetByID(ctx, dup.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeasonMerge_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	err := f.store.Seasons().Merge(context.Background(), 999, f.season.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	err = f.store.Seasons().CheckMerge(context.Background(), 999, f.season.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	assert.NoError(t, f.store.Competitions().CheckMerge(context.Background(), f.comp.ID, f.comp.ID))
}

func TestPlayerUpsertAppearance(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	p, created, err := f.store.Players().Upsert(ctx, player.Player{ExternalID: "p-1", Name: "Saka", TeamID: f.home.ID})
	require.NoError(t, err)
	assert.True(t, created)
	_, created, err = f.store.Players().Upsert(ctx, player.Player{ExternalID: "p-1", Name: "Bukayo Saka", TeamID: f.home.ID})
	require.NoError(t, err)
	assert.False(t, created)

	app := player.Appearance{PlayerID: p.ID, MatchID: f.match.ID, TeamID: f.home.ID, IsStarter: true, MinuteOff: 90}
	created, err = f.store.Players().UpsertAppearance(ctx, app)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = f.store.Players().UpsertAppearance(ctx, app)
	require.NoError(t, err)
	assert.False(t, created)

	app.TeamID = 999
	_, err = f.store.Players().UpsertAppearance(ctx, app)
	assert.ErrorIs(t, err, errs.ErrReferential)
}

func TestSeedDemo(t *testing.T) {
	t.Parallel()

	store := NewStore()
	require.NoError(t, SeedDemo(context.Background(), store))

	matches, err := store.Matches().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 3)
	assert.Equal(t, "demo-3", matches[0].MatchID)
}
