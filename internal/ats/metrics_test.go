package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGradesKnownScenario(t *testing.T) {
	// Away lost by 5, model liked the away side by 2, away was getting
	// 3.5. The line covered (actual_diff -1.5) while the model picked
	// away (pred_diff +5.5), so the model loses the bet.
	m := Compute(-5, 2, 3.5)

	assert.InDelta(t, -1.5, m.ActualDiff, 1e-9)
	assert.InDelta(t, 5.5, m.PredDiff, 1e-9)
	assert.Equal(t, ResultLoss, m.Result)
	assert.Equal(t, PickAway, m.EdgePick)
	assert.True(t, m.EdgeOpportunity)
	require.NotNil(t, m.EdgeHit)
	assert.False(t, *m.EdgeHit)
	assert.InDelta(t, 7.0, m.ModelError, 1e-9)
	assert.InDelta(t, 8.5, m.MarketError, 1e-9)
}

func TestComputePushIsExactlyZeroActualDiff(t *testing.T) {
	m := Compute(-3.0, 1.0, 3.0)
	assert.Equal(t, ResultPush, m.Result)
	assert.Nil(t, m.EdgeHit, "a push never grades the edge")

	// One point off a push is a full grade.
	m = Compute(-4.0, 1.0, 3.0)
	assert.NotEqual(t, ResultPush, m.Result)
}

func TestComputeWinWhenSignsAgree(t *testing.T) {
	m := Compute(2, 5, 1) // actual +3, predicted +6
	assert.Equal(t, ResultWin, m.Result)
	require.NotNil(t, m.EdgeHit)
	assert.True(t, *m.EdgeHit)

	m = Compute(-10, -4, 1) // actual -9, predicted -3
	assert.Equal(t, ResultWin, m.Result)
}

func TestComputeEdgeFields(t *testing.T) {
	// An edge below the 3-point threshold is not an opportunity.
	m := Compute(5, 1, 1)
	assert.InDelta(t, 2.0, m.Edge, 1e-9)
	assert.False(t, m.EdgeOpportunity)
	assert.Equal(t, PickAway, m.EdgePick)

	m = Compute(5, -6, 1)
	assert.Equal(t, PickHome, m.EdgePick)
	assert.True(t, m.EdgeOpportunity)

	// Predicted diff of exactly zero means the model has no side.
	m = Compute(5, -1, 1)
	assert.Equal(t, PickPush, m.EdgePick)
	assert.Nil(t, m.EdgeHit)
}

func TestResultsPartitionEveryGame(t *testing.T) {
	rows := []Metrics{
		Compute(-5, 2, 3.5),
		Compute(-3, 1, 3),
		Compute(2, 5, 1),
		Compute(-10, -4, 1),
		Compute(0, 4, 0),
	}
	s := Summarize(rows)

	assert.Equal(t, len(rows), s.Wins+s.Losses+s.Pushes)
	assert.Equal(t, s.GradedGames, s.Wins+s.Losses)
	assert.Equal(t, s.TotalGames, s.GradedGames+s.Pushes)
}

func TestSummarizeRates(t *testing.T) {
	rows := []Metrics{
		Compute(10, 8, 0),  // win, edge opp (pred_diff 8)
		Compute(-10, 8, 0), // loss, edge opp, edge miss
		Compute(-3, 6, 3),  // push, edge opp but not a bet
	}
	s := Summarize(rows)

	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	require.NotNil(t, s.ATSAccuracy)
	assert.InDelta(t, 0.5, *s.ATSAccuracy, 1e-9)

	assert.Equal(t, 3, s.EdgeOpportunities)
	assert.Equal(t, 2, s.EdgeBets, "pushed edge opportunities are not bets")
	assert.Equal(t, 1, s.EdgeWins)
	require.NotNil(t, s.EdgeHitRate)
	assert.InDelta(t, 0.5, *s.EdgeHitRate, 1e-9)
	require.NotNil(t, s.ModelMAE)
	require.NotNil(t, s.MarketMAE)
}

func TestSummarizeEmptyLeavesRatesNil(t *testing.T) {
	s := Summarize(nil)
	assert.Nil(t, s.ATSAccuracy, "no graded games means no record, not 0%")
	assert.Nil(t, s.EdgeHitRate)
	assert.Nil(t, s.ModelMAE)
	assert.Nil(t, s.MarketMAE)
	assert.Zero(t, s.TotalGames)
}

func TestSummarizeAllPushes(t *testing.T) {
	s := Summarize([]Metrics{Compute(-3, 1, 3)})
	assert.Equal(t, 1, s.Pushes)
	assert.Zero(t, s.GradedGames)
	assert.Nil(t, s.ATSAccuracy)
	assert.NotNil(t, s.ModelMAE, "errors are still measurable on pushes")
}
