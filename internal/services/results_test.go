package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
)

func finalGame(id, homeID, homeMarket, homeName string, homePts int, awayID, awayMarket, awayName string, awayPts int) models.Game {
	hp, ap := homePts, awayPts
	return models.Game{
		ID:     id,
		Status: "closed",
		Home:   models.TeamSide{ID: homeID, Market: homeMarket, Name: homeName, Points: &hp},
		Away:   models.TeamSide{ID: awayID, Market: awayMarket, Name: awayName, Points: &ap},
	}
}

func TestBuildResultIndexSkipsGamesWithoutScores(t *testing.T) {
	scored := finalGame("g1", "bos", "Boston", "Celtics", 110, "nyk", "New York", "Knicks", 104)
	unscored := models.Game{
		ID:     "g2",
		Status: "closed",
		Home:   models.TeamSide{ID: "phi", Market: "Philadelphia", Name: "76ers"},
		Away:   models.TeamSide{ID: "mia", Market: "Miami", Name: "Heat"},
	}

	idx := BuildResultIndex([]models.Game{scored, unscored})
	assert.Equal(t, 1, idx.Len())

	_, ok := idx.Lookup("mia", "phi", "Miami Heat @ Philadelphia 76ers", "Miami Heat", "Philadelphia 76ers")
	assert.False(t, ok)
}

func TestLookupByTeamIDs(t *testing.T) {
	idx := BuildResultIndex([]models.Game{
		finalGame("g1", "bos", "Boston", "Celtics", 110, "nyk", "New York", "Knicks", 104),
	})

	r, ok := idx.Lookup("nyk", "bos", "", "", "")
	require.True(t, ok)
	assert.Equal(t, 110, r.HomePoints)
	assert.Equal(t, 104, r.AwayPoints)
	assert.Equal(t, -6.0, r.AwayMargin)
	assert.Equal(t, "Boston Celtics", r.HomeTeam)
}

func TestLookupFallsBackToMatchupKey(t *testing.T) {
	idx := BuildResultIndex([]models.Game{
		finalGame("g1", "bos", "Boston", "Celtics", 110, "nyk", "New York", "Knicks", 104),
	})

	// Prediction carries stale ids from another feed, so the id lookup
	// misses and the matchup key resolves the game instead.
	r, ok := idx.Lookup("sr:nyk", "sr:bos", "New York Knicks @ Boston Celtics", "", "")
	require.True(t, ok)
	assert.Equal(t, "nyk", r.AwayID)
}

func TestLookupFallsBackToNormalizedNames(t *testing.T) {
	idx := BuildResultIndex([]models.Game{
		finalGame("g1", "lac", "LA", "Clippers", 98, "gsw", "Golden State", "Warriors", 112),
	})

	// Names from the odds feed spell the Clippers out in full.
	r, ok := idx.Lookup("", "", "", "Golden State Warriors", "Los Angeles Clippers")
	require.True(t, ok)
	assert.Equal(t, 14.0, r.AwayMargin)
}

func TestLookupParsesTeamsFromMatchupKey(t *testing.T) {
	idx := BuildResultIndex([]models.Game{
		finalGame("g1", "lac", "LA", "Clippers", 98, "gsw", "Golden State", "Warriors", 112),
	})

	// No ids and no explicit names, and the key itself uses the long
	// Clippers spelling. The norm index still matches after splitting.
	r, ok := idx.Lookup("", "", "Golden State Warriors @ Los Angeles Clippers", "", "")
	require.True(t, ok)
	assert.Equal(t, "gsw", r.AwayID)
}

func TestLookupPrefersIDsOverNames(t *testing.T) {
	early := finalGame("g1", "bos", "Boston", "Celtics", 100, "nyk", "New York", "Knicks", 90)
	late := finalGame("g2", "bos2", "Boston", "Celtics", 95, "nyk2", "New York", "Knicks", 99)

	idx := BuildResultIndex([]models.Game{early, late})

	// Both games share names, so the key and norm indexes hold whichever
	// was indexed last. The ids disambiguate.
	r, ok := idx.Lookup("nyk", "bos", "New York Knicks @ Boston Celtics", "New York Knicks", "Boston Celtics")
	require.True(t, ok)
	assert.Equal(t, 100, r.HomePoints)

	r, ok = idx.Lookup("nyk2", "bos2", "New York Knicks @ Boston Celtics", "New York Knicks", "Boston Celtics")
	require.True(t, ok)
	assert.Equal(t, 95, r.HomePoints)
}

func TestLookupMissReturnsFalse(t *testing.T) {
	idx := BuildResultIndex(nil)
	_, ok := idx.Lookup("nyk", "bos", "New York Knicks @ Boston Celtics", "New York Knicks", "Boston Celtics")
	assert.False(t, ok)
}

func TestLookupScoringObjectFallback(t *testing.T) {
	pts := func(n int) *models.Scoring { return &models.Scoring{Points: &n} }
	g := models.Game{
		ID:     "g1",
		Status: "closed",
		Home:   models.TeamSide{ID: "den", Market: "Denver", Name: "Nuggets", Scoring: pts(120)},
		Away:   models.TeamSide{ID: "uta", Market: "Utah", Name: "Jazz", Scoring: pts(105)},
	}

	idx := BuildResultIndex([]models.Game{g})
	r, ok := idx.Lookup("uta", "den", "", "", "")
	require.True(t, ok)
	assert.Equal(t, -15.0, r.AwayMargin)
}
