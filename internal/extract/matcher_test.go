package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hit struct {
	pattern string
	text    string
}

func findHits(t *testing.T, text string) []hit {
	t.Helper()
	m, err := NewMatcher(DefaultPatterns(), 0)
	require.NoError(t, err)

	var got []hit
	for _, match := range m.Find(text) {
		got = append(got, hit{pattern: match.Pattern, text: match.Text})
	}
	return got
}

func TestMatcherPatternShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []hit
	}{
		{
			"slash date wins over its own year",
			"EOL on 12/31/2025 confirmed",
			[]hit{{"numeric_dmy", "12/31/2025"}},
		},
		{
			"year first date",
			"released 2025-03-14 worldwide",
			[]hit{{"numeric_ymd", "2025-03-14"}},
		},
		{
			"day before month name",
			"15 March 2026",
			[]hit{{"day_month_year", "15 March 2026"}},
		},
		{
			"month name first with comma",
			"May 15, 2026",
			[]hit{{"month_day_year", "May 15, 2026"}},
		},
		{
			"month and year only",
			"until January 2027",
			[]hit{{"month_year", "January 2027"}},
		},
		{
			"quarter marker",
			"ships Q3 2025",
			[]hit{{"quarter", "Q3 2025"}},
		},
		{
			"fiscal year compact",
			"budget FY2026 cycle",
			[]hit{{"fiscal_year", "FY2026"}},
		},
		{
			"fiscal year spaced two digits",
			"plan for FY 26",
			[]hit{{"fiscal_year", "FY 26"}},
		},
		{
			"bare year",
			"since 2023 uptime",
			[]hit{{"bare_year", "2023"}},
		},
		{
			"iso timestamp outside the bare year range",
			"logged 1999-12-31T23:59:59 UTC",
			[]hit{{"iso_timestamp", "1999-12-31T23:59:59"}},
		},
		{
			"relative phrase loses to its own year",
			"available early 2026 onward",
			[]hit{{"bare_year", "2026"}},
		},
		{
			"season loses to its own year",
			"Summer 2025 launch",
			[]hit{{"bare_year", "2025"}},
		},
		{
			"end of phrase with non month word",
			"by end of support 1999",
			[]hit{{"end_of_period", "by end of support 1999"}},
		},
		{
			"lowercase quarter",
			"q3 2025",
			[]hit{{"quarter", "q3 2025"}},
		},
		{
			"no dates at all",
			"the quick brown fox",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findHits(t, tt.text))
		})
	}
}

func TestMatcherProximityDedup(t *testing.T) {
	// Overlapping forms at the same position produce exactly one record.
	got := findHits(t, "EOL on 12/31/2025 confirmed")
	require.Len(t, got, 1)

	// Distinct dates far apart are all kept, in pattern then text order.
	got = findHits(t, "EOL 12/31/2025 and support until 06/30/2026")
	assert.Equal(t, []hit{
		{"numeric_dmy", "12/31/2025"},
		{"numeric_dmy", "06/30/2026"},
	}, got)
}

func TestMatcherProximityBoundaryIsExclusive(t *testing.T) {
	// "2026" starts exactly 10 characters after the full match start, which
	// is outside the suppression window, so both survive.
	got := findHits(t, "March 15, 2026")
	assert.Equal(t, []hit{
		{"month_day_year", "March 15, 2026"},
		{"bare_year", "2026"},
	}, got)
}

func TestMatcherListOrderWins(t *testing.T) {
	// month_year is listed before end_of_period and claims the position
	// first; the longer phrase starting 7 characters earlier is suppressed.
	got := findHits(t, "end of March 2026")
	assert.Equal(t, []hit{{"month_year", "March 2026"}}, got)

	// In a full timestamp the T glues the day to the clock, so the
	// year-first shape cannot end on a word boundary. The bare year is
	// listed before the ISO shape and claims the offset.
	got = findHits(t, "2025-03-14T10:30:00")
	assert.Equal(t, []hit{{"bare_year", "2025"}}, got)
}

func TestMatcherCustomProximity(t *testing.T) {
	m, err := NewMatcher(DefaultPatterns(), 20)
	require.NoError(t, err)

	got := m.Find("March 15, 2026")
	require.Len(t, got, 1)
	assert.Equal(t, "March 15, 2026", got[0].Text)
}

func TestMatcherTightProximityKeepsPhrases(t *testing.T) {
	// At proximity 1 only exact-offset duplicates collapse, so the
	// phrase patterns surface next to the year they contain.
	m, err := NewMatcher(DefaultPatterns(), 1)
	require.NoError(t, err)

	got := m.Find("available early 2026 onward")
	require.Len(t, got, 2)
	assert.Equal(t, "2026", got[0].Text)
	assert.Equal(t, "relative_period", got[1].Pattern)
	assert.Equal(t, "early 2026", got[1].Text)

	got = m.Find("Summer 2025 launch")
	require.Len(t, got, 2)
	assert.Equal(t, "season_year", got[1].Pattern)
}

func TestMatcherMatchOffsets(t *testing.T) {
	m, err := NewMatcher(DefaultPatterns(), 0)
	require.NoError(t, err)

	got := m.Find("EOL on 12/31/2025 confirmed")
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Start)
}

func TestNewMatcherRejectsBadPattern(t *testing.T) {
	_, err := NewMatcher([]Pattern{{Name: "broken", Regex: `(`}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
