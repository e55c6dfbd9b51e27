package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_Anchors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "in anchor with multi-word place",
			query:    "After work friends hangout and food in downtown Toronto",
			expected: "Downtown Toronto",
		},
		{
			name:     "near anchor keeps short pronoun",
			query:    "restaurants near me",
			expected: "Me", // documented heuristic weakness, kept on purpose
		},
		{
			name:     "last occurrence of anchor wins",
			query:    "fun in the sun in Miami",
			expected: "Miami",
		},
		{
			name:     "around anchor",
			query:    "coffee shops around Kensington Market",
			expected: "Kensington Market",
		},
		{
			name:     "near has priority over in",
			query:    "dinner in a quiet spot near Union Station",
			expected: "Union Station",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Location(tt.query))
		})
	}
}

func TestLocation_DegenerateInput(t *testing.T) {
	assert.Equal(t, UnknownLocation, Location(""))
	assert.Equal(t, UnknownLocation, Location("   "))

	// 1-2 character queries come back unmodified, no title-casing and no
	// whitespace trimming either.
	assert.Equal(t, "a", Location("a"))
	assert.Equal(t, "ny", Location("ny"))
	assert.Equal(t, " ny ", Location(" ny "))
}

func TestLocation_TrailingFillers(t *testing.T) {
	assert.Equal(t, "Vancouver", Location("brunch in vancouver please"))
	assert.Equal(t, "Ossington", Location("bars in ossington tonight thanks"))
}

func TestLocation_RegexFallbacks(t *testing.T) {
	// No anchor present, food pattern captures the trailing span.
	assert.Equal(t, "Old Montreal", Location("restaurants old montreal"))
	// "show me X" imperative.
	assert.Equal(t, "The Distillery District", Location("show me the distillery district"))
}

func TestLocation_PlaceNounWindow(t *testing.T) {
	got := Location("somewhere with a nice beach vibe")
	assert.Contains(t, strings.ToLower(got), "beach")
}

func TestLocation_FallbackTruncation(t *testing.T) {
	long := strings.Repeat("x", 60)
	got := Location(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, 53)
}

func TestLocation_CandidateTruncatedAtWordBoundary(t *testing.T) {
	got := Location("things in " + strings.Repeat("verylongword ", 5) + "end")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxLabelLen+3)
}

func TestAnchorCandidate_RawFragment(t *testing.T) {
	// Candidate before cleanup equals the substring after the last " in ".
	cand, ok := anchorCandidate("food in downtown toronto")
	assert.True(t, ok)
	assert.Equal(t, "downtown toronto", cand)
}
