package statsbomb

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// flexID accepts ids written as JSON numbers or strings.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("id %s is neither a number nor a string", data)
	}
	*id = flexID(data)
	return nil
}

type named struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type matchRecord struct {
	MatchID     flexID `json:"match_id"`
	MatchDate   string `json:"match_date"`
	HomeScore   *int   `json:"home_score"`
	AwayScore   *int   `json:"away_score"`
	Competition struct {
		ID   flexID `json:"competition_id"`
		Name string `json:"competition_name"`
	} `json:"competition"`
	Season struct {
		ID   flexID `json:"season_id"`
		Name string `json:"season_name"`
	} `json:"season"`
	HomeTeam struct {
		Name string `json:"home_team_name"`
	} `json:"home_team"`
	AwayTeam struct {
		Name string `json:"away_team_name"`
	} `json:"away_team"`
}

type eventRecord struct {
	Type     named     `json:"type"`
	Team     named     `json:"team"`
	Player   named     `json:"player"`
	Minute   int       `json:"minute"`
	Second   int       `json:"second"`
	Location []float64 `json:"location"`
	Shot     *struct {
		Outcome     named    `json:"outcome"`
		BodyPart    named    `json:"body_part"`
		Type        named    `json:"type"`
		StatsbombXG *float64 `json:"statsbomb_xg"`
	} `json:"shot"`
}

type lineupRecord struct {
	TeamName string `json:"team_name"`
	Lineup   []struct {
		PlayerID   flexID `json:"player_id"`
		PlayerName string `json:"player_name"`
		Position   string `json:"position"`
		Positions  []struct {
			Position string `json:"position"`
		} `json:"positions"`
	} `json:"lineup"`
}

type competitionRecord struct {
	CompetitionID   flexID `json:"competition_id"`
	SeasonID        flexID `json:"season_id"`
	CompetitionName string `json:"competition_name"`
	SeasonName      string `json:"season_name"`
	CountryName     string `json:"country_name"`
}
