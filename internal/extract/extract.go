// Package extract derives a short, human-presentable place label from a
// free-text search query. The label is a placeholder only: once the planning
// backend answers, its city/location fields supersede whatever this package
// produced.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownLocation is returned for empty queries.
const UnknownLocation = "Unknown Location"

const (
	minCandidateLen = 2
	maxLabelLen     = 40
	maxFallbackLen  = 50
)

// Anchors tried in priority order. The first anchor present in the query
// wins; the query is split on its last occurrence and the trailing fragment
// becomes the candidate.
var anchors = []string{
	" near ",
	" in ",
	" at ",
	" around ",
	" from ",
	" to ",
	" by ",
	" close to ",
	" next to ",
}

var (
	foodPattern = regexp.MustCompile(
		`(?:restaurants?|food|dining|cafes?|coffee|brunch|lunch|dinner|bars?|eateries|eats?)\s+(.+)$`)
	activityPattern = regexp.MustCompile(
		`(?:things to do|activities|attractions|events|nightlife|hangouts?|fun)\s+(.+)$`)
	showMePattern = regexp.MustCompile(`show me\s+(.+)$`)
)

// Generic place-nouns scanned as a last structured resort. A ±20 character
// window around the first occurrence becomes the candidate.
var placeNouns = []string{
	"city", "town", "downtown", "uptown", "village", "beach", "park",
	"square", "district", "neighborhood", "neighbourhood", "waterfront",
	"harbor", "harbour", "island", "market", "plaza", "mall",
}

// Fillers stripped one at a time from the end of a candidate.
var trailingFillers = map[string]struct{}{
	"please":   {},
	"pls":      {},
	"now":      {},
	"today":    {},
	"tonight":  {},
	"tomorrow": {},
	"asap":     {},
	"thanks":   {},
}

// A strategy inspects the lowercased query and either yields a raw candidate
// or passes. Strategies run in order; a candidate rejected by cleanup falls
// through to the next strategy.
type strategy func(q string) (string, bool)

var strategies = []strategy{
	anchorCandidate,
	regexCandidate(foodPattern),
	regexCandidate(activityPattern),
	regexCandidate(showMePattern),
	placeNounCandidate,
}

// Location extracts a display label from query. The result is best-effort:
// ambiguous input can yield a nonsensical label, and the documented
// weaknesses (e.g. "restaurants near me" -> "Me") are preserved on purpose.
func Location(query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return UnknownLocation
	}
	if utf8.RuneCountInString(q) <= minCandidateLen {
		return query
	}

	lower := strings.ToLower(q)
	for _, s := range strategies {
		cand, ok := s(lower)
		if !ok {
			continue
		}
		if label, ok := cleanup(cand); ok {
			return label
		}
	}

	return truncateRunes(q, maxFallbackLen)
}

func anchorCandidate(q string) (string, bool) {
	for _, a := range anchors {
		idx := strings.LastIndex(q, a)
		if idx < 0 {
			continue
		}
		return strings.TrimSpace(q[idx+len(a):]), true
	}
	return "", false
}

func regexCandidate(re *regexp.Regexp) strategy {
	return func(q string) (string, bool) {
		m := re.FindStringSubmatch(q)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
}

func placeNounCandidate(q string) (string, bool) {
	for _, noun := range placeNouns {
		idx := strings.Index(q, noun)
		if idx < 0 {
			continue
		}
		start := idx - 20
		if start < 0 {
			start = 0
		}
		end := idx + len(noun) + 20
		if end > len(q) {
			end = len(q)
		}
		return strings.TrimSpace(q[start:end]), true
	}
	return "", false
}

// cleanup normalizes a raw candidate for display: trailing fillers stripped
// one at a time, a 2-character minimum enforced, truncation to 40 characters
// at a word boundary, then title-casing.
func cleanup(cand string) (string, bool) {
	words := strings.Fields(cand)
	for len(words) > 0 {
		if _, ok := trailingFillers[words[len(words)-1]]; !ok {
			break
		}
		words = words[:len(words)-1]
	}

	c := strings.Join(words, " ")
	if utf8.RuneCountInString(c) < minCandidateLen {
		return "", false
	}

	c = truncateAtWord(c, maxLabelLen)
	return titleCase(c), true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// truncateAtWord cuts s to at most max runes, preferring the nearest word
// boundary before the limit, and appends an ellipsis when it cuts.
func truncateAtWord(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	head := string([]rune(s)[:max])
	if idx := strings.LastIndex(head, " "); idx > 0 {
		head = head[:idx]
	}
	return head + "..."
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
