// Package alias maps vendor spellings of team and competition names onto the
// canonical names stored locally.
package alias

import (
	"sort"
	"strings"

	"github.com/riskibarqy/futball/internal/domain/naming"
)

// Row is one external name to canonical name pair.
type Row struct {
	External  string
	Canonical string
}

// Map looks names up by their normalized form.
type Map struct {
	byKey map[string]string
	rows  []Row
}

// Build indexes rows, ignoring rows with an empty side. A later row for the
// same normalized name wins.
func Build(rows []Row) Map {
	m := Map{byKey: make(map[string]string, len(rows))}
	for _, row := range rows {
		external := naming.Clean(row.External)
		canonical := naming.Clean(row.Canonical)
		if external == "" || canonical == "" {
			continue
		}
		m.byKey[naming.Normalize(external)] = canonical
		m.rows = append(m.rows, Row{External: external, Canonical: canonical})
	}
	return m
}

// Lookup returns the canonical name registered for name.
func (m Map) Lookup(name string) (string, bool) {
	if len(m.byKey) == 0 {
		return "", false
	}
	canonical, ok := m.byKey[naming.Normalize(name)]
	return canonical, ok
}

// Canonical returns the mapped name, or the cleaned input when unmapped.
func (m Map) Canonical(name string) string {
	if canonical, ok := m.Lookup(name); ok {
		return canonical
	}
	return naming.Clean(name)
}

func (m Map) Len() int {
	return len(m.byKey)
}

// MergePairs lists rows whose two names differ exactly, sorted by external
// name; these are the merge candidates.
func (m Map) MergePairs() []Row {
	out := make([]Row, 0, len(m.rows))
	seen := make(map[string]struct{}, len(m.rows))
	for _, row := range m.rows {
		if row.External == row.Canonical {
			continue
		}
		key := row.External + "\x00" + row.Canonical
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].External) < strings.ToLower(out[j].External)
	})
	return out
}

// DefaultCompetitionRows folds vendor competition titles into the titles used
// by the result datasets.
func DefaultCompetitionRows() []Row {
	return []Row{
		{External: "English Premier League (football)", Canonical: "Premier League"},
		{External: "English Premier League", Canonical: "Premier League"},
		{External: "German Bundesliga (football)", Canonical: "Bundesliga"},
		{External: "German Bundesliga", Canonical: "Bundesliga"},
		{External: "1. Bundesliga", Canonical: "Bundesliga"},
		{External: "Spanish La Liga (football)", Canonical: "La Liga"},
		{External: "Spanish La Liga", Canonical: "La Liga"},
		{External: "French Ligue 1 (football)", Canonical: "Ligue 1"},
		{External: "French Ligue 1", Canonical: "Ligue 1"},
		{External: "Italian Serie A (football)", Canonical: "Serie A"},
		{External: "Italian Serie A", Canonical: "Serie A"},
	}
}
