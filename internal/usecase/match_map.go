package usecase

import (
	"time"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/naming"
)

// MatchMapRow pairs a vendor match id with the local key a results import
// synthesizes for the same fixture.
type MatchMapRow struct {
	ExternalID string `json:"statsbomb_match_id"`
	MatchID    string `json:"match_id"`
}

// BuildMatchMap formats each vendor fixture the way the results importer
// keys it: the match date in dateLayout and the alias-mapped team names.
// Entries without an id, teams or a valid ISO date are left out.
func BuildMatchMap(items []ExternalMatch, aliases alias.Map, dateLayout string) []MatchMapRow {
	if dateLayout == "" {
		dateLayout = DefaultResultDateLayout
	}
	out := make([]MatchMapRow, 0, len(items))
	for _, item := range items {
		id := naming.Clean(item.MatchID)
		home := aliases.Canonical(item.HomeTeam)
		away := aliases.Canonical(item.AwayTeam)
		if id == "" || home == "" || away == "" {
			continue
		}
		date, err := time.Parse(ISODate, naming.Clean(item.MatchDate))
		if err != nil {
			continue
		}
		out = append(out, MatchMapRow{
			ExternalID: id,
			MatchID:    SynthesizeMatchID(date.Format(dateLayout), home, away),
		})
	}
	return out
}
