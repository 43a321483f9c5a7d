package expectedgoals

import (
	"math"
	"sort"
)

// Record aggregates one team's expected goals over a season.
type Record struct {
	TeamID       int64   `json:"team_id"`
	TeamName     string  `json:"team"`
	Matches      int     `json:"matches"`
	GoalsFor     int     `json:"gf"`
	GoalsAgainst int     `json:"ga"`
	XGFor        float64 `json:"xgf"`
	XGAgainst    float64 `json:"xga"`
}

// Summary is the presentation row with per-match averages.
type Summary struct {
	TeamID       int64   `json:"team_id"`
	TeamName     string  `json:"team"`
	Matches      int     `json:"matches"`
	XGFor        float64 `json:"xgf"`
	XGAgainst    float64 `json:"xga"`
	XGForAvg     float64 `json:"xgf_per_match"`
	XGAgainstAvg float64 `json:"xga_per_match"`
}

// Summaries turns records into rows sorted by team name, averages rounded to
// two decimals.
func Summaries(records []Record) []Summary {
	out := make([]Summary, 0, len(records))
	for _, r := range records {
		row := Summary{
			TeamID:    r.TeamID,
			TeamName:  r.TeamName,
			Matches:   r.Matches,
			XGFor:     Round2(r.XGFor),
			XGAgainst: Round2(r.XGAgainst),
		}
		if r.Matches > 0 {
			row.XGForAvg = Round2(r.XGFor / float64(r.Matches))
			row.XGAgainstAvg = Round2(r.XGAgainst / float64(r.Matches))
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })
	return out
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
