// Package naming canonicalizes free-text team and competition names so that
// names coming from different vendors can be compared.
package naming

import (
	"regexp"
	"strings"
	"unicode"
)

var legalSuffixes = []string{"fc", "afc", "cf", "sc"}

var punctuationReplacer = strings.NewReplacer(".", "", ",", "", "&", " and ")

// Normalize folds case, drops periods and commas, spells out "&", collapses
// whitespace and strips one trailing legal suffix token (fc, afc, cf, sc).
// It never fails: empty input yields an empty string.
func Normalize(raw string) string {
	value := strings.ToLower(raw)
	value = punctuationReplacer.Replace(value)
	fields := strings.Fields(value)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		for _, suffix := range legalSuffixes {
			if last == suffix {
				fields = fields[:len(fields)-1]
				break
			}
		}
	}
	return strings.Join(fields, " ")
}

// Key is the looser form used to key external match indexes: trimmed,
// whitespace collapsed and lowercased, with punctuation kept.
func Key(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// Clean trims and collapses internal whitespace without changing case.
func Clean(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// CompetitionKey reduces a competition title to lowercase letters and single
// spaces with parenthesized parts removed, e.g. "English Premier League
// (football)" becomes "english premier league".
func CompetitionKey(raw string) string {
	value := parenthesized.ReplaceAllString(strings.ToLower(raw), " ")
	value = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, value)
	return strings.Join(strings.Fields(value), " ")
}

// Slug turns a dataset or league title into a dash separated token.
func Slug(raw string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
