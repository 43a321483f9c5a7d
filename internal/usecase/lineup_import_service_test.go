package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/domain/player"
)

type stubLineupSource map[string][]ExternalLineup

func (s stubLineupSource) DecodeLineups(_ context.Context, path string) ([]ExternalLineup, bool, error) {
	stem := filepath.Base(path)
	items, ok := s[stem[:len(stem)-len(filepath.Ext(stem))]]
	return items, ok, nil
}

func TestLineupImportService_Import(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, _ := newTestStore(t, true)
	source := stubLineupSource{
		"demo-1": {
			{TeamName: "Arsenal", Players: []ExternalLineupPlayer{
				{ExternalID: "p1", Name: "Bukayo Saka", Position: "Right Wing"},
				{ExternalID: "p2", Name: "Declan Rice"},
				{ExternalID: "", Name: "Nameless"},
			}},
			{TeamName: "Wolves", Players: []ExternalLineupPlayer{{ExternalID: "p9", Name: "Unknown"}}},
		},
		"demo-2": {
			{TeamName: "arsenal", Players: []ExternalLineupPlayer{{ExternalID: "p1", Name: "Bukayo Saka", Position: "Right Wing"}}},
		},
	}
	service := NewLineupImportService(store.Matches(), store.Teams(), store.Players(), source, testLogger)

	stats, err := service.Import(ctx, LineupImportOptions{Dir: "lineups"})
	require.NoError(t, err)
	assert.Equal(t, LineupImportStats{
		Matches:            3,
		MissingFiles:       1,
		PlayersCreated:     2,
		AppearancesCreated: 3,
		AppearancesSkipped: 1,
		TeamsUnresolved:    1,
	}, stats)

	m := demoMatch(t, store, "demo-1")
	appearances, err := store.Players().ListAppearancesByMatch(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, appearances, 2)
	for _, a := range appearances {
		assert.True(t, a.IsStarter)
		assert.Equal(t, player.DefaultMinuteOn, a.MinuteOn)
		assert.Equal(t, player.DefaultMinuteOff, a.MinuteOff)
		assert.Equal(t, m.HomeTeamID, a.TeamID)
	}

	again, err := service.Import(ctx, LineupImportOptions{Dir: "lineups"})
	require.NoError(t, err)
	assert.Equal(t, 0, again.PlayersCreated)
	assert.Equal(t, 0, again.AppearancesCreated)
}

func TestLineupImportService_RequiresDir(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, false)
	_, err := NewLineupImportService(store.Matches(), store.Teams(), store.Players(), stubLineupSource{}, testLogger).
		Import(context.Background(), LineupImportOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
