package leaguestanding

import "github.com/riskibarqy/futball/internal/domain/naming"

// ZoneRules holds how many places qualify for each European competition and
// how many are relegated.
type ZoneRules struct {
	ChampionsLeague  int
	EuropaLeague     int
	ConferenceLeague int
	Relegation       int
}

var competitionAliases = map[string]string{
	"premier league":         "epl",
	"english premier league": "epl",
	"epl":                    "epl",
	"la liga":                "laliga",
	"laliga":                 "laliga",
	"spanish la liga":        "laliga",
	"bundesliga":             "bundesliga",
	"german bundesliga":      "bundesliga",
	"serie a":                "seriea",
	"italian serie a":        "seriea",
	"ligue":                  "ligue1",
	"french ligue":           "ligue1",
}

var rulesByAlias = map[string]ZoneRules{
	"epl":        {ChampionsLeague: 4, EuropaLeague: 2, ConferenceLeague: 1, Relegation: 3},
	"laliga":     {ChampionsLeague: 4, EuropaLeague: 2, ConferenceLeague: 1, Relegation: 3},
	"bundesliga": {ChampionsLeague: 4, EuropaLeague: 2, ConferenceLeague: 1, Relegation: 3},
	"seriea":     {ChampionsLeague: 4, EuropaLeague: 2, ConferenceLeague: 1, Relegation: 3},
	"ligue1":     {ChampionsLeague: 3, EuropaLeague: 1, ConferenceLeague: 1, Relegation: 3},
}

var defaultRules = ZoneRules{Relegation: 3}

// RulesFor looks the competition up by its normalized title.
func RulesFor(competitionName string) ZoneRules {
	if key, ok := competitionAliases[naming.CompetitionKey(competitionName)]; ok {
		return rulesByAlias[key]
	}
	return defaultRules
}

// ApplyZones tags ranked rows. Rows must already be ranked.
func ApplyZones(rows []Standing, rules ZoneRules) {
	cl := rules.ChampionsLeague
	el := cl + rules.EuropaLeague
	ecl := el + rules.ConferenceLeague
	relegation := len(rows) - rules.Relegation

	for i := range rows {
		pos := rows[i].Position
		switch {
		case pos <= cl:
			rows[i].Zone = ZoneChampionsLeague
		case pos <= el:
			rows[i].Zone = ZoneEuropaLeague
		case pos <= ecl:
			rows[i].Zone = ZoneConferenceLeague
		case pos > relegation:
			rows[i].Zone = ZoneRelegation
		default:
			rows[i].Zone = ""
		}
	}
}
