package leaguestanding

import (
	"sort"
	"strings"
)

const (
	ZoneChampionsLeague  = "champions_league"
	ZoneEuropaLeague     = "europa_league"
	ZoneConferenceLeague = "conference_league"
	ZoneRelegation       = "relegation"
)

// Standing is one team's league table row.
type Standing struct {
	TeamID         int64  `json:"team_id"`
	TeamName       string `json:"team"`
	Position       int    `json:"rank"`
	Played         int    `json:"played"`
	Won            int    `json:"win"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"loss"`
	GoalsFor       int    `json:"gf"`
	GoalsAgainst   int    `json:"ga"`
	GoalDifference int    `json:"gd"`
	Points         int    `json:"points"`
	Zone           string `json:"zone,omitempty"`
}

// Record folds one result into the row. Points are 3 for a win, 1 for a draw.
func (s *Standing) Record(goalsFor, goalsAgainst int) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		s.Won++
		s.Points += 3
	case goalsFor == goalsAgainst:
		s.Draw++
		s.Points++
	default:
		s.Lost++
	}
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
}

// Rank sorts rows by points, goal difference, then goals for, all
// descending, and assigns 1-based positions. Rows tied on all three keep a
// name order so output is deterministic.
func Rank(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return strings.ToLower(a.TeamName) < strings.ToLower(b.TeamName)
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}
