package competition

import "github.com/riskibarqy/futball/internal/domain/naming"

// League is a known top-flight league: the slug used by result datasets and
// the title and country the open-data index files it under.
type League struct {
	Slug    string
	Title   string
	Country string
}

var leagues = []League{
	{Slug: "premier-league", Title: "Premier League", Country: "England"},
	{Slug: "la-liga", Title: "La Liga", Country: "Spain"},
	{Slug: "bundesliga", Title: "1. Bundesliga", Country: "Germany"},
	{Slug: "serie-a", Title: "Serie A", Country: "Italy"},
	{Slug: "ligue-1", Title: "Ligue 1", Country: "France"},
}

func Leagues() []League {
	out := make([]League, len(leagues))
	copy(out, leagues)
	return out
}

// LeagueBySlug accepts a slug or any title that slugs to one.
func LeagueBySlug(raw string) (League, bool) {
	slug := naming.Slug(raw)
	for _, l := range leagues {
		if l.Slug == slug {
			return l, true
		}
	}
	return League{}, false
}

// Matches reports whether an index entry belongs to the league.
func (l League) Matches(title, country string) bool {
	if naming.Key(title) != naming.Key(l.Title) {
		return false
	}
	return country == "" || naming.Key(country) == naming.Key(l.Country)
}
