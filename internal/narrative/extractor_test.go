package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
)

func intPtr(v int) *int { return &v }

func event(clock string, home, away int) models.Event {
	return models.Event{Clock: clock, HomePoints: intPtr(home), AwayPoints: intPtr(away)}
}

func finalGame(homePts, awayPts int, periods []models.Period) models.Game {
	return models.Game{
		ID:        "g1",
		Status:    "closed",
		Scheduled: "2026-01-10T00:00:00Z",
		Home:      models.TeamSide{ID: "bos", Market: "Boston", Name: "Celtics", Points: intPtr(homePts)},
		Away:      models.TeamSide{ID: "nyk", Market: "New York", Name: "Knicks", Points: intPtr(awayPts)},
		Periods:   periods,
	}
}

func TestExtractValidation(t *testing.T) {
	g := finalGame(100, 90, []models.Period{{Type: "quarter", Number: 1}})

	notFinal := g
	notFinal.Status = "inprogress"
	_, err := Extract(notFinal)
	assert.ErrorIs(t, err, ErrNotFinal)

	noDate := g
	noDate.Scheduled = ""
	_, err = Extract(noDate)
	assert.ErrorIs(t, err, ErrNoDate)

	noPBP := g
	noPBP.Periods = nil
	_, err = Extract(noPBP)
	assert.ErrorIs(t, err, ErrNoPlayByPlay)
}

func TestExtractMaxLeadsIncludeOvertime(t *testing.T) {
	periods := []models.Period{
		{Type: "quarter", Number: 1, Events: []models.Event{
			event("8:00", 12, 2), // home up 10
			event("2:00", 14, 14),
		}},
		{Type: "quarter", Number: 4, Events: []models.Event{
			event("9:00", 90, 95),
			event("0:10", 100, 100),
		}},
		{Type: "overtime", Number: 1, Events: []models.Event{
			event("3:00", 102, 115), // away up 13 in OT
		}},
	}
	g := finalGame(105, 115, periods)

	n, err := Extract(g)
	require.NoError(t, err)
	assert.Equal(t, 10, n.MaxHomeLead)
	assert.Equal(t, 13, n.MaxAwayLead, "overtime events count toward max leads")
}

func TestExtractClutchWindowExcludesOvertime(t *testing.T) {
	periods := []models.Period{
		{Type: "quarter", Number: 4, Events: []models.Event{
			event("6:00", 80, 80), // outside the window, seeds running totals
			event("4:30", 85, 82), // +5 home, +2 away inside window
			event("0:30", 90, 88), // +5 home, +6 away
		}},
		{Type: "overtime", Number: 1, Events: []models.Event{
			event("1:00", 100, 98), // must not count as clutch
		}},
	}
	g := finalGame(102, 98, periods)

	n, err := Extract(g)
	require.NoError(t, err)
	assert.Equal(t, 10, n.ClutchHomePoints)
	assert.Equal(t, 8, n.ClutchAwayPoints)
	assert.Equal(t, 2, n.ClutchMargin)
}

func TestExtractBlownLeadGoesToLoser(t *testing.T) {
	periods := []models.Period{
		{Type: "quarter", Number: 2, Events: []models.Event{
			event("5:00", 50, 38), // home up 12
		}},
		{Type: "quarter", Number: 4, Events: []models.Event{
			event("0:05", 98, 101),
		}},
	}
	g := finalGame(98, 101, periods)

	n, err := Extract(g)
	require.NoError(t, err)
	assert.Equal(t, "home", n.BlownLeadSide)
	assert.Equal(t, "Boston Celtics", n.BlownLeadTeam)
}

func TestExtractWinnerNeverBlowsLead(t *testing.T) {
	// Home builds a 15-point lead, gives it all back, then wins anyway.
	periods := []models.Period{
		{Type: "quarter", Number: 2, Events: []models.Event{
			event("5:00", 55, 40),
		}},
		{Type: "quarter", Number: 3, Events: []models.Event{
			event("5:00", 70, 72),
		}},
		{Type: "quarter", Number: 4, Events: []models.Event{
			event("0:05", 105, 100),
		}},
	}
	g := finalGame(105, 100, periods)

	n, err := Extract(g)
	require.NoError(t, err)
	assert.Equal(t, 15, n.MaxHomeLead)
	assert.Empty(t, n.BlownLeadSide)
	assert.Empty(t, n.BlownLeadTeam)
}

func TestExtractSmallLeadIsNotBlown(t *testing.T) {
	periods := []models.Period{
		{Type: "quarter", Number: 1, Events: []models.Event{
			event("5:00", 20, 11), // home up 9, below the threshold
		}},
		{Type: "quarter", Number: 4, Events: []models.Event{
			event("0:05", 95, 99),
		}},
	}
	g := finalGame(95, 99, periods)

	n, err := Extract(g)
	require.NoError(t, err)
	assert.Empty(t, n.BlownLeadSide)
}

func TestExtractIsDeterministic(t *testing.T) {
	periods := []models.Period{
		{Type: "quarter", Number: 4, Events: []models.Event{
			event("4:00", 88, 90),
			event("0:10", 100, 99),
		}},
	}
	g := finalGame(100, 99, periods)

	first, err := Extract(g)
	require.NoError(t, err)
	second, err := Extract(g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatchupKey(t *testing.T) {
	assert.Equal(t, "New York Knicks @ Boston Celtics",
		MatchupKey("New York Knicks", "Boston Celtics"))
}

func TestParseClock(t *testing.T) {
	secs, ok := parseClock("4:30")
	assert.True(t, ok)
	assert.Equal(t, 270, secs)

	_, ok = parseClock("")
	assert.False(t, ok)
	_, ok = parseClock("430")
	assert.False(t, ok)
}
