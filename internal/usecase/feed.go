package usecase

import (
	"context"
	"strings"
)

// ExternalMatch is one match object of a vendor match list.
type ExternalMatch struct {
	MatchID     string `json:"match_id"`
	MatchDate   string `json:"match_date"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Competition string `json:"competition"`
	Season      string `json:"season"`
	HomeScore   *int   `json:"home_score,omitempty"`
	AwayScore   *int   `json:"away_score,omitempty"`
}

// Complete reports whether the six fields needed to place the match are all
// present.
func (m ExternalMatch) Complete() bool {
	for _, v := range []string{m.MatchID, m.MatchDate, m.HomeTeam, m.AwayTeam, m.Competition, m.Season} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ExternalEvent is one vendor event. Only shot events carry the shot fields.
type ExternalEvent struct {
	Type       string
	TeamName   string
	Minute     int
	Second     int
	Location   []float64
	Outcome    string
	BodyPart   string
	ShotType   string
	XG         *float64
	PlayerID   string
	PlayerName string
}

const EventTypeShot = "Shot"

func (e ExternalEvent) IsShot() bool {
	return strings.EqualFold(strings.TrimSpace(e.Type), EventTypeShot)
}

// ExternalLineup is one team sheet of a vendor lineup file.
type ExternalLineup struct {
	TeamName string
	Players  []ExternalLineupPlayer
}

type ExternalLineupPlayer struct {
	ExternalID string
	Name       string
	Position   string
}

// ResultRow is one line of a league results CSV. Date is kept raw; the
// importer parses it with the dataset's layout.
type ResultRow struct {
	Line              int
	Date              string
	HomeTeam          string
	AwayTeam          string
	HomeGoals         *int
	AwayGoals         *int
	HomeShots         *int
	AwayShots         *int
	HomeShotsOnTarget *int
	AwayShotsOnTarget *int

	// Malformed holds the parse error of a line that could not be read.
	Malformed string
}

// EventSource decodes one events file.
type EventSource interface {
	DecodeEvents(ctx context.Context, path string) ([]ExternalEvent, error)
}

// LineupSource decodes one lineups file. A missing file reports ok=false.
type LineupSource interface {
	DecodeLineups(ctx context.Context, path string) (items []ExternalLineup, ok bool, err error)
}

// OpenDataSeason is one competition season of the open-data index.
type OpenDataSeason struct {
	CompetitionID   string
	SeasonID        string
	CompetitionName string
	SeasonName      string
	CountryName     string
}

// OpenDataClient reads files of the open-data tree by path relative to its
// data root, e.g. "matches/2/27.json". A missing file wraps ErrNotFound.
type OpenDataClient interface {
	Fetch(ctx context.Context, relPath string) ([]byte, error)
}

// OpenDataCodec decodes index files and concatenates match lists.
type OpenDataCodec interface {
	DecodeCompetitions(data []byte) ([]OpenDataSeason, error)
	DecodeMatches(data []byte) ([]ExternalMatch, error)
	MergeLists(lists ...[]byte) ([]byte, error)
}
