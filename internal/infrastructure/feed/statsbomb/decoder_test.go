package statsbomb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/usecase"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDecodeMatches(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"match_id": 3754058, "match_date": "2015-08-08", "home_score": 0, "away_score": 1,
		 "competition": {"competition_id": 2, "competition_name": "Premier League"},
		 "season": {"season_id": "27", "season_name": "2015/2016"},
		 "home_team": {"home_team_name": " Manchester United "},
		 "away_team": {"away_team_name": "Tottenham Hotspur"}},
		{"match_id": "x-2", "match_date": "2015-08-09",
		 "competition": {"competition_name": "Premier League"},
		 "season": {"season_name": "2015/2016"},
		 "home_team": {"home_team_name": "Chelsea"},
		 "away_team": {"away_team_name": "Swansea City"}}
	]`)

	items, err := NewDecoder().DecodeMatches(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "3754058", first.MatchID)
	assert.Equal(t, "Manchester United", first.HomeTeam)
	assert.Equal(t, "2015/2016", first.Season)
	require.NotNil(t, first.HomeScore)
	assert.Equal(t, 0, *first.HomeScore)
	assert.True(t, first.Complete())

	assert.Equal(t, "x-2", items[1].MatchID)
	assert.Nil(t, items[1].HomeScore)
}

func TestDecodeMatchesRejectsObject(t *testing.T) {
	t.Parallel()

	_, err := NewDecoder().DecodeMatches([]byte(`{"match_id": 1}`))
	require.ErrorIs(t, err, ErrNotList)
}

func TestDecodeEvents(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "3754058.json", `[
		{"type": {"id": 35, "name": "Starting XI"}, "team": {"id": 39, "name": "Manchester United"}, "minute": 0, "second": 0},
		{"type": {"id": 16, "name": "Shot"}, "team": {"id": 39, "name": "Manchester United"},
		 "player": {"id": 3943, "name": "Wayne Rooney"}, "minute": 22, "second": 5, "location": [108.2, 35.1],
		 "shot": {"statsbomb_xg": 0.087, "outcome": {"id": 100, "name": "Saved"},
		          "body_part": {"id": 40, "name": "Right Foot"}, "type": {"id": 87, "name": "Open Play"}}}
	]`)

	events, err := NewDecoder().DecodeEvents(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Starting XI", events[0].Type)
	assert.Empty(t, events[0].Outcome)
	assert.Nil(t, events[0].XG)

	shot := events[1]
	assert.Equal(t, "Shot", shot.Type)
	assert.Equal(t, "3943", shot.PlayerID)
	assert.Equal(t, "Wayne Rooney", shot.PlayerName)
	assert.Equal(t, []float64{108.2, 35.1}, shot.Location)
	assert.Equal(t, "Saved", shot.Outcome)
	assert.Equal(t, "Right Foot", shot.BodyPart)
	assert.Equal(t, "Open Play", shot.ShotType)
	require.NotNil(t, shot.XG)
	assert.InDelta(t, 0.087, *shot.XG, 1e-9)
}

func TestDecodeEventsNamesFileOnError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "broken.json", `{"type": "Shot"}`)

	_, err := NewDecoder().DecodeEvents(context.Background(), path)
	require.ErrorIs(t, err, ErrNotList)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestDecodeLineups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "1.json", `[
		{"team_name": "Arsenal", "lineup": [
			{"player_id": 10, "player_name": "Bukayo Saka", "positions": [{"position": "Right Wing"}]},
			{"player_id": 11, "player_name": "Declan Rice", "position": "Defensive Midfield"},
			{"player_id": 12, "player_name": "Unused Sub"}
		]}
	]`)

	decoder := NewDecoder()
	lineups, ok, err := decoder.DecodeLineups(context.Background(), path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, lineups, 1)
	require.Len(t, lineups[0].Players, 3)
	assert.Equal(t, "Right Wing", lineups[0].Players[0].Position)
	assert.Equal(t, "Defensive Midfield", lineups[0].Players[1].Position)
	assert.Empty(t, lineups[0].Players[2].Position)
	assert.Equal(t, "10", lineups[0].Players[0].ExternalID)

	_, ok, err = decoder.DecodeLineups(context.Background(), filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeCompetitionsAndMergeLists(t *testing.T) {
	t.Parallel()

	decoder := NewDecoder()
	comps, err := decoder.DecodeCompetitions([]byte(`[
		{"competition_id": 2, "season_id": 27, "competition_name": "Premier League", "season_name": "2015/2016", "country_name": "England"}
	]`))
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, usecase.OpenDataSeason{
		CompetitionID:   "2",
		SeasonID:        "27",
		CompetitionName: "Premier League",
		SeasonName:      "2015/2016",
		CountryName:     "England",
	}, comps[0])

	merged, err := decoder.MergeLists(
		[]byte(`[{"match_id": 1, "match_date": "2015-08-08"}]`),
		[]byte(` [{"match_id": 2, "match_date": "2015-08-09"}]`),
	)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"match_id": 1, "match_date": "2015-08-08"}, {"match_id": 2, "match_date": "2015-08-09"}]`, string(merged))

	items, err := decoder.DecodeMatches(merged)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].MatchID)
	assert.Equal(t, "2", items[1].MatchID)

	_, err = decoder.MergeLists([]byte(`[]`), []byte(`null`))
	require.ErrorIs(t, err, ErrNotList)
}
