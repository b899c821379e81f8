package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateThresholdsBetCountsNeverIncrease(t *testing.T) {
	games := []GradedGame{
		{AwayMargin: 10, PredAwayMargin: 8, Line: -1},  // pred_diff 7
		{AwayMargin: -2, PredAwayMargin: 1, Line: 2},   // pred_diff 3
		{AwayMargin: 4, PredAwayMargin: -1, Line: 0.5}, // pred_diff -0.5
		{AwayMargin: -6, PredAwayMargin: -9, Line: 4},  // pred_diff -5
	}

	results := EvaluateThresholds(games, DefaultThresholds)
	require.Len(t, results, len(DefaultThresholds))

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Bets, results[i-1].Bets,
			"raising the cutoff from %.0f to %.0f must not add bets",
			results[i-1].Threshold, results[i].Threshold)
	}
}

func TestEvaluateThresholdsSkipsMissingLines(t *testing.T) {
	games := []GradedGame{
		{AwayMargin: 10, PredAwayMargin: 8, Line: 0}, // no recorded line
		{AwayMargin: 5, PredAwayMargin: 4, Line: 1},
	}

	results := EvaluateThresholds(games, []float64{0})
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Bets)
}

func TestEvaluateThresholdsDropsPushes(t *testing.T) {
	games := []GradedGame{
		{AwayMargin: -3, PredAwayMargin: 2, Line: 3}, // actual_diff 0
	}
	results := EvaluateThresholds(games, []float64{0})
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Bets)
	assert.Nil(t, results[0].Accuracy, "no bets means no accuracy, not 0%")
}

func TestEvaluateThresholdsAccuracy(t *testing.T) {
	games := []GradedGame{
		{AwayMargin: 10, PredAwayMargin: 8, Line: -1}, // pred 7, actual 9: hit
		{AwayMargin: -8, PredAwayMargin: 6, Line: 1},  // pred 7, actual -7: miss
		{AwayMargin: 2, PredAwayMargin: 1, Line: 1},   // pred 2, below cutoff 4
	}

	results := EvaluateThresholds(games, []float64{4})
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Bets)
	require.NotNil(t, results[0].Accuracy)
	assert.InDelta(t, 0.5, *results[0].Accuracy, 1e-9)
}

func TestEvaluateThresholdsBoundaryIsInclusive(t *testing.T) {
	games := []GradedGame{
		{AwayMargin: 5, PredAwayMargin: 2, Line: 1},   // pred_diff exactly 3
		{AwayMargin: 5, PredAwayMargin: -4, Line: 1},  // pred_diff exactly -3
		{AwayMargin: 5, PredAwayMargin: 1.5, Line: 1}, // pred_diff 2.5, excluded
	}
	results := EvaluateThresholds(games, []float64{3})
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Bets)
}

func TestEvaluateThresholdsNilGridUsesDefault(t *testing.T) {
	results := EvaluateThresholds(nil, nil)
	assert.Len(t, results, len(DefaultThresholds))
	for _, r := range results {
		assert.Zero(t, r.Bets)
		assert.Nil(t, r.Accuracy)
	}
}
