package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Boston Celtics", "boston celtics"},
		{"  Philadelphia   76ers ", "philadelphia 76ers"},
		{"L.A. Lakers", "los angeles lakers"},
		{"LA Clippers", "los angeles clippers"},
		{"NY Knicks", "new york knicks"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeMatchesAcrossFeeds(t *testing.T) {
	// The two Clippers spellings must collide after normalization.
	assert.Equal(t, Normalize("LA Clippers"), Normalize("Los Angeles  Clippers"))
}

func TestAbbr(t *testing.T) {
	assert.Equal(t, "BOS", Abbr("Boston Celtics"))
	assert.Equal(t, "LAC", Abbr("LA Clippers"))
	assert.Equal(t, "LAC", Abbr("Los Angeles Clippers"))
	assert.Equal(t, "Springfield Atoms", Abbr("Springfield Atoms"))
}

func TestFormatSigned(t *testing.T) {
	v := -4.5
	assert.Equal(t, "-4.5", FormatSigned(&v, 1))

	v = 4.5
	assert.Equal(t, "+4.5", FormatSigned(&v, 1))

	v = -0.0001
	assert.Equal(t, "+0.0", FormatSigned(&v, 1), "near-zero values never render as -0.0")

	assert.Equal(t, "N/A", FormatSigned(nil, 1))
}

func TestFormatTeamSpread(t *testing.T) {
	v := -6.5
	assert.Equal(t, "BOS -6.5", FormatTeamSpread("Boston Celtics", &v))
	assert.Equal(t, "BOS N/A", FormatTeamSpread("Boston Celtics", nil))
}

func TestSpreadConversions(t *testing.T) {
	assert.Equal(t, -7.5, AwayMarginToSpread(7.5))
	assert.Equal(t, 7.5, SpreadToAwayMargin(-7.5))
	assert.Equal(t, 3.0, AwayMarginToSpread(SpreadToAwayMargin(3.0)))
}
