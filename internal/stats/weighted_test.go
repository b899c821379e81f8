package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgagliardi0425/Plopdiction/internal/history"
)

func game(day int, isHome bool, pf, pa int) history.GameResult {
	return history.GameResult{
		GameID:        "g",
		GameDate:      time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
		IsHome:        isHome,
		PointsFor:     pf,
		PointsAgainst: pa,
		OpponentID:    "opp",
	}
}

func TestWeightedRecentGamesCountMore(t *testing.T) {
	// Same four results in different order: wins stacked at the end
	// must beat wins stacked at the start.
	winsLate := []history.GameResult{
		game(1, true, 90, 100),
		game(2, true, 90, 100),
		game(3, true, 110, 100),
		game(4, true, 110, 100),
	}
	winsEarly := []history.GameResult{
		game(1, true, 110, 100),
		game(2, true, 110, 100),
		game(3, true, 90, 100),
		game(4, true, 90, 100),
	}

	late := Compute("t1", "Team", winsLate, DefaultHalfLife)
	early := Compute("t1", "Team", winsEarly, DefaultHalfLife)

	assert.Greater(t, late.WeightedWinPct, early.WeightedWinPct)
	assert.Greater(t, late.WeightedMargin, early.WeightedMargin)
}

func TestWeightFollowsHalfLife(t *testing.T) {
	// A game exactly halfLife games ago carries half the weight of the
	// most recent game. Two games, halfLife 1: weights 0.5 and 1.0, so
	// margins -10 and +10 average to +10/3.
	games := []history.GameResult{
		game(1, true, 90, 100),
		game(2, true, 110, 100),
	}
	s := Compute("t1", "Team", games, 1.0)
	assert.InDelta(t, 10.0/3.0, s.WeightedMargin, 1e-9)
}

func TestComputeEmptyLogYieldsDefaultSnapshot(t *testing.T) {
	s := Compute("t1", "Team", nil, DefaultHalfLife)

	assert.Equal(t, 0.5, s.WeightedWinPct)
	assert.Equal(t, 0.5, s.Recent10WinPct)
	assert.Zero(t, s.WeightedMargin)
	assert.Zero(t, s.WeightedPointsFor)
	assert.Zero(t, s.GamesPlayed)
	assert.True(t, s.LastGameDate.IsZero())
}

func TestSplitMarginsFallBackToOverall(t *testing.T) {
	// All games on the road: the home split is empty and must inherit
	// the overall margin instead of zeroing out.
	games := []history.GameResult{
		game(1, false, 105, 100),
		game(2, false, 107, 100),
	}
	s := Compute("t1", "Team", games, DefaultHalfLife)

	assert.Equal(t, s.WeightedMargin, s.WeightedHomeMargin)
	assert.NotZero(t, s.WeightedAwayMargin)
}

func TestRecentMarginIgnoresHalfLife(t *testing.T) {
	// Last three margins are +2, +4, +5. The recent-form mean is a
	// simple average, so the half-life must not change it.
	games := []history.GameResult{
		game(1, true, 130, 100), // outside the window
		game(2, true, 102, 100),
		game(3, true, 104, 100),
		game(4, true, 105, 100),
	}

	require.InDelta(t, 3.667, RecentMargin(games, 3), 0.001)

	for _, halfLife := range []float64{1, 5, 10, 100} {
		s := Compute("t1", "Team", games, halfLife)
		assert.InDelta(t, 3.667, RecentMargin(games, 3), 0.001)
		assert.NotZero(t, s.WeightedMargin)
	}
}

func TestRecentWinPctShortLog(t *testing.T) {
	games := []history.GameResult{
		game(1, true, 110, 100),
		game(2, true, 90, 100),
	}
	assert.Equal(t, 0.5, RecentWinPct(games, 5))
	assert.Equal(t, 0.0, RecentWinPct(nil, 5))
}

func TestHeadToHead(t *testing.T) {
	games := []history.GameResult{
		game(1, true, 110, 100), // vs opp, +10
		{GameDate: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), IsHome: true, PointsFor: 100, PointsAgainst: 104, OpponentID: "other"},
		game(3, false, 95, 100), // vs opp, -5
	}

	margin, winPct, count := HeadToHead(games, "opp")
	assert.Equal(t, 2, count)
	assert.InDelta(t, 2.5, margin, 1e-9)
	assert.InDelta(t, 0.5, winPct, 1e-9)
}

func TestHeadToHeadNoMeetings(t *testing.T) {
	margin, winPct, count := HeadToHead([]history.GameResult{game(1, true, 110, 100)}, "stranger")
	assert.Zero(t, count)
	assert.Zero(t, margin)
	assert.Zero(t, winPct)
}

func TestRestProfile(t *testing.T) {
	gameDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// Home played yesterday, away three days ago.
	restDiff, homeB2B, awayB2B := RestProfile(gameDate,
		time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, -2.0, restDiff)
	assert.Equal(t, 0.0, homeB2B)
	assert.Equal(t, 0.0, awayB2B)

	// Same-day second game is the back-to-back flag.
	_, homeB2B, _ = RestProfile(gameDate, gameDate, time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1.0, homeB2B)
}

func TestRestProfileMissingHistory(t *testing.T) {
	gameDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	restDiff, homeB2B, awayB2B := RestProfile(gameDate, time.Time{}, gameDate.AddDate(0, 0, -1))
	assert.Zero(t, restDiff)
	assert.Zero(t, homeB2B)
	assert.Zero(t, awayB2B)
}

func TestWeightedMostRecentHasFullWeight(t *testing.T) {
	games := []history.GameResult{game(1, true, 108, 100)}
	s := Compute("t1", "Team", games, DefaultHalfLife)
	assert.InDelta(t, 8.0, s.WeightedMargin, 1e-9)
	assert.InDelta(t, 1.0, s.WeightedWinPct, 1e-9)
	assert.False(t, math.IsNaN(s.WeightedPointsFor))
}
