package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfgagliardi0425/Plopdiction/internal/features"
)

func evenMatchup() *features.Vector {
	return &features.Vector{
		HomeWeightedPointsFor:     110,
		HomeWeightedPointsAgainst: 110,
		AwayWeightedPointsFor:     110,
		AwayWeightedPointsAgainst: 110,
	}
}

func TestBaselineHomeCourtOnly(t *testing.T) {
	// Identical teams, no form or rest difference: the prediction is
	// home advantage regressed 10% toward zero, negated for the away
	// margin.
	b := NewBaseline()
	pred := b.PredictAwayMargin(evenMatchup())
	assert.InDelta(t, -2.25, pred, 1e-9)
}

func TestBaselineRatingsMatchup(t *testing.T) {
	b := NewBaseline()
	v := evenMatchup()
	v.HomeWeightedPointsFor = 120     // home offense vs away defense: (120+110)/2 = 115
	v.AwayWeightedPointsAgainst = 110 // away expected stays (110+110)/2 = 110

	// base = 115 - 110 + 2.5 = 7.5, regressed to 6.75
	pred := b.PredictAwayMargin(v)
	assert.InDelta(t, -6.75, pred, 1e-9)
}

func TestBaselineMomentum(t *testing.T) {
	b := NewBaseline()
	v := evenMatchup()
	v.HomeRecentMargin5 = 10
	v.AwayRecentMargin5 = -10

	// momentum = 20 * 0.15 = 3.0, base 2.5, total 5.5 -> 4.95
	pred := b.PredictAwayMargin(v)
	assert.InDelta(t, -4.95, pred, 1e-9)
}

func TestBaselineRestAdjustments(t *testing.T) {
	b := NewBaseline()

	homeTired := evenMatchup()
	homeTired.HomeB2B = 1
	assert.InDelta(t, 0.0, b.PredictAwayMargin(homeTired), 1e-9,
		"home back-to-back cancels home court: (2.5 - 2.5) * 0.9")

	awayTired := evenMatchup()
	awayTired.AwayB2B = 1
	assert.InDelta(t, -4.5, b.PredictAwayMargin(awayTired), 1e-9)
}

func TestBaselineRestDiffIsClamped(t *testing.T) {
	b := NewBaseline()

	moderate := evenMatchup()
	moderate.RestDiff = 2
	extreme := evenMatchup()
	extreme.RestDiff = 6

	assert.InDelta(t, b.PredictAwayMargin(moderate), b.PredictAwayMargin(extreme), 1e-9,
		"rest advantage past two days adds nothing")
}

func TestBaselineConfigurableKnobs(t *testing.T) {
	b := &Baseline{HomeAdvantage: 0, MomentumWeight: 0, RegressionFactor: 0}
	assert.Zero(t, b.PredictAwayMargin(evenMatchup()))
}
