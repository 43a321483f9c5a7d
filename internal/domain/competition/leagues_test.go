package competition

import "testing"

func TestLeagueBySlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		title   string
		country string
		ok      bool
	}{
		{in: "premier-league", title: "Premier League", country: "England", ok: true},
		{in: "Premier League", title: "Premier League", country: "England", ok: true},
		{in: "bundesliga", title: "1. Bundesliga", country: "Germany", ok: true},
		{in: "Ligue 1", title: "Ligue 1", country: "France", ok: true},
		{in: "eredivisie"},
	}
	for _, tc := range cases {
		got, ok := LeagueBySlug(tc.in)
		if ok != tc.ok {
			t.Fatalf("LeagueBySlug(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if got.Title != tc.title || got.Country != tc.country {
			t.Fatalf("LeagueBySlug(%q) = %+v", tc.in, got)
		}
	}
}

func TestLeagueMatches(t *testing.T) {
	t.Parallel()

	l, _ := LeagueBySlug("bundesliga")
	if !l.Matches("1. Bundesliga", "Germany") {
		t.Fatalf("expected index title to match")
	}
	if l.Matches("1. Bundesliga", "Austria") {
		t.Fatalf("expected country mismatch")
	}
	if l.Matches("2. Bundesliga", "") {
		t.Fatalf("expected second division not to match")
	}
}
