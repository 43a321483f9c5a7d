package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/team"
	competitionmock "github.com/riskibarqy/futball/internal/mocks/domain/competition"
	seasonmock "github.com/riskibarqy/futball/internal/mocks/domain/season"
	teammock "github.com/riskibarqy/futball/internal/mocks/domain/team"
)

func TestEntityResolver_FindOrCreateIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, false)
	resolver := newTestResolver(store)

	comp, created, err := resolver.FindOrCreateCompetitionIn(ctx, "  Serie   A ", "Italy")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Serie A", comp.Name)
	assert.Equal(t, "Italy", comp.Country)

	again, created, err := resolver.FindOrCreateCompetition(ctx, "Serie A")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, comp.ID, again.ID)

	s1, created, err := resolver.FindOrCreateSeason(ctx, comp.ID, "2023/2024")
	require.NoError(t, err)
	assert.True(t, created)
	s2, created, err := resolver.FindOrCreateSeason(ctx, comp.ID, "2023/2024")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, s1.ID, s2.ID)

	_, _, err = resolver.FindOrCreateTeam(ctx, "   ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestEntityResolver_FindOrCreateTeamResolvesLostRace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	resolver := NewEntityResolver(competitionmock.NewRepository(t), seasonmock.NewRepository(t), teamRepo)

	winner := team.Team{ID: 7, Name: "Leeds United"}
	teamRepo.On("GetByName", mock.Anything, "Leeds United").Return(team.Team{}, false, nil).Once()
	teamRepo.On("Create", mock.Anything, team.Team{Name: "Leeds United"}).
		Return(team.Team{}, errs.DuplicateKey("team name=%q", "Leeds United")).
		Once()
	teamRepo.On("GetByName", mock.Anything, "Leeds United").Return(winner, true, nil).Once()

	got, created, err := resolver.FindOrCreateTeam(ctx, "Leeds United")
	if err != nil {
		t.Fatalf("find or create team: %v", err)
	}
	if created {
		t.Fatalf("expected the concurrent row to be reused")
	}
	if got.ID != winner.ID {
		t.Fatalf("unexpected team id: got=%d want=%d", got.ID, winner.ID)
	}
}

func TestEntityResolver_FindOrCreateTeamPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	resolver := NewEntityResolver(competitionmock.NewRepository(t), seasonmock.NewRepository(t), teamRepo)

	boom := errors.New("connection reset")
	teamRepo.On("GetByName", mock.Anything, "Everton").Return(team.Team{}, false, boom).Once()

	_, _, err := resolver.FindOrCreateTeam(context.Background(), "Everton")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestMatchIndex_ResolvesThroughAliases(t *testing.T) {
	t.Parallel()

	aliases := BuildAliasIndex([]alias.Row{
		{External: "Man Utd", Canonical: "Manchester United"},
		{External: "", Canonical: "Ignored"},
	})
	idx := BuildMatchIndex([]ExternalMatch{
		{MatchID: "3890", MatchDate: "2024-03-02", HomeTeam: "Man Utd", AwayTeam: "Everton FC"},
		{MatchID: "3891", MatchDate: "02/03/2024", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{MatchID: "3892", MatchDate: "2024-03-02", HomeTeam: "Manchester United", AwayTeam: "Everton"},
		{MatchID: "", MatchDate: "2024-03-02", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
	}, aliases)

	date := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	id, ok := idx.Resolve(date, "Manchester United", "Everton")
	assert.True(t, ok)
	assert.Equal(t, "3890", id)

	_, ok = idx.Resolve(date, "Arsenal", "Chelsea")
	assert.False(t, ok)

	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 2, idx.Malformed())
	assert.Equal(t, []string{"3892"}, idx.Collisions())
}

func TestResolveOrSynthesizeMatchID(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	idx := BuildMatchIndex([]ExternalMatch{
		{MatchID: "sb-1", MatchDate: "2024-05-01", HomeTeam: "Red", AwayTeam: "Blue"},
	}, alias.Map{})

	id, found := ResolveOrSynthesizeMatchID(idx, "01/05/24", date, "Red", "Blue")
	assert.True(t, found)
	assert.Equal(t, "sb-1", id)

	id, found = ResolveOrSynthesizeMatchID(idx, " 01/05/24", date, "  Green  Town ", "Blue")
	assert.False(t, found)
	assert.Equal(t, "01/05/24-Green Town-Blue", id)

	id, found = ResolveOrSynthesizeMatchID(nil, "01/05/24", date, "Red", "Blue")
	assert.False(t, found)
	assert.Equal(t, "01/05/24-Red-Blue", id)
}
