package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/domain/team"
)

func TestTeamMapService_Generate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, true)
	_, err := store.Teams().Create(ctx, team.Team{Name: "Brighton & Hove Albion"})
	require.NoError(t, err)

	externals := []ExternalMatch{
		{HomeTeam: "Arsenal FC", AwayTeam: "Wolverhampton Wanderer"},
		{HomeTeam: "Brighton and Hove Albion", AwayTeam: "Arsenal FC"},
		{HomeTeam: "Real Madrid", AwayTeam: " "},
	}

	rows, err := NewTeamMapService(store.Teams()).Generate(ctx, externals, naming.SequenceRatio{}, 0)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, TeamMapRow{External: "Arsenal FC", Suggested: "Arsenal", Score: 1}, rows[0])
	assert.Equal(t, TeamMapRow{External: "Brighton and Hove Albion", Suggested: "Brighton & Hove Albion", Score: 1}, rows[1])
	assert.Equal(t, "Real Madrid", rows[2].External)
	assert.Empty(t, rows[2].Suggested)
	assert.Equal(t, "Wolverhampton Wanderers", rows[3].Suggested)
	assert.GreaterOrEqual(t, rows[3].Score, naming.DefaultThreshold)
	assert.Less(t, rows[3].Score, 1.0)
}
