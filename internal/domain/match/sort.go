package match

import "sort"

func sortMatches(items []Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].MatchDate.Equal(items[j].MatchDate) {
			return items[i].MatchDate.After(items[j].MatchDate)
		}
		return items[i].ID < items[j].ID
	})
}
