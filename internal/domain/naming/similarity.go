package naming

import (
	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the minimum score for a team-map suggestion.
const DefaultThreshold = 0.85

// Similarity scores two already normalized names in [0, 1].
type Similarity interface {
	Name() string
	Score(a, b string) float64
}

// SequenceRatio scores by matching blocks, 2*M/T over the two rune sequences.
type SequenceRatio struct{}

func (SequenceRatio) Name() string { return "sequence" }

func (SequenceRatio) Score(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcherWithJunk(splitRunes(a), splitRunes(b), false, nil)
	return m.Ratio()
}

// LevenshteinRatio scores by edit distance normalized by the longer name.
type LevenshteinRatio struct{}

func (LevenshteinRatio) Name() string { return "levenshtein" }

func (LevenshteinRatio) Score(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// SimilarityByName returns the strategy registered under name, falling back
// to SequenceRatio.
func SimilarityByName(name string) Similarity {
	switch name {
	case "levenshtein":
		return LevenshteinRatio{}
	default:
		return SequenceRatio{}
	}
}

// Candidate is the best local name for one external name.
type Candidate struct {
	Name  string
	Score float64
}

// BestMatch picks the highest scoring candidate at or above threshold. Ties
// keep the earliest candidate, so callers pass a sorted list for stable
// output.
func BestMatch(strategy Similarity, name string, candidates []string, threshold float64) (Candidate, bool) {
	if strategy == nil {
		strategy = SequenceRatio{}
	}
	target := Normalize(name)
	best := Candidate{}
	found := false
	for _, candidate := range candidates {
		score := strategy.Score(target, Normalize(candidate))
		if score < threshold {
			continue
		}
		if !found || score > best.Score {
			best = Candidate{Name: candidate, Score: score}
			found = true
		}
	}
	return best, found
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
