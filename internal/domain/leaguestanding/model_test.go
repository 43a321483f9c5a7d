package leaguestanding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	row := Standing{TeamName: "Red"}
	row.Record(2, 1)
	row.Record(0, 0)
	row.Record(1, 3)

	assert.Equal(t, Standing{
		TeamName: "Red", Played: 3, Won: 1, Draw: 1, Lost: 1,
		GoalsFor: 3, GoalsAgainst: 4, GoalDifference: -1, Points: 4,
	}, row)
}

func TestRankTieBreaks(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{TeamName: "A", Points: 10, GoalDifference: 3, GoalsFor: 8},
		{TeamName: "B", Points: 10, GoalDifference: 3, GoalsFor: 9},
		{TeamName: "C", Points: 10, GoalDifference: 5, GoalsFor: 1},
		{TeamName: "D", Points: 12, GoalDifference: -4, GoalsFor: 2},
		{TeamName: "E", Points: 10, GoalDifference: 3, GoalsFor: 8},
	}
	Rank(rows)

	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.TeamName)
	}
	assert.Equal(t, []string{"D", "C", "B", "A", "E"}, got)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, 5, rows[4].Position)
}

func TestZones(t *testing.T) {
	t.Parallel()

	rows := make([]Standing, 20)
	for i := range rows {
		rows[i].Position = i + 1
	}
	ApplyZones(rows, RulesFor("English Premier League (football)"))

	assert.Equal(t, ZoneChampionsLeague, rows[3].Zone)
	assert.Equal(t, ZoneEuropaLeague, rows[4].Zone)
	assert.Equal(t, ZoneEuropaLeague, rows[5].Zone)
	assert.Equal(t, ZoneConferenceLeague, rows[6].Zone)
	assert.Equal(t, "", rows[7].Zone)
	assert.Equal(t, "", rows[16].Zone)
	assert.Equal(t, ZoneRelegation, rows[17].Zone)

	assert.Equal(t, ZoneRules{ChampionsLeague: 3, EuropaLeague: 1, ConferenceLeague: 1, Relegation: 3}, RulesFor("Ligue 1"))
	assert.Equal(t, ZoneRules{Relegation: 3}, RulesFor("Eredivisie"))
}
