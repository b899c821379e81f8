// Package predictor turns feature vectors into predicted margins.
package predictor

import "github.com/mfgagliardi0425/Plopdiction/internal/features"

// Predictor maps a feature vector to a predicted away margin, in
// away-team terms to match the grading convention.
type Predictor interface {
	PredictAwayMargin(v *features.Vector) float64
}

// Baseline is a ratings-based predictor with no trained weights. Each
// team's expected score blends its offense against the opponent's
// defense, then home court, recent form, and rest are layered on and
// the total is regressed toward zero to damp overconfidence.
type Baseline struct {
	HomeAdvantage    float64
	MomentumWeight   float64
	RegressionFactor float64
}

// NewBaseline returns a predictor with the standard tuning.
func NewBaseline() *Baseline {
	return &Baseline{
		HomeAdvantage:    2.5,
		MomentumWeight:   0.15,
		RegressionFactor: 0.10,
	}
}

// PredictAwayMargin returns the predicted away margin for the matchup
// the vector describes.
func (b *Baseline) PredictAwayMargin(v *features.Vector) float64 {
	return -b.predictHomeMargin(v)
}

func (b *Baseline) predictHomeMargin(v *features.Vector) float64 {
	homeExpected := (v.HomeWeightedPointsFor + v.AwayWeightedPointsAgainst) / 2
	awayExpected := (v.AwayWeightedPointsFor + v.HomeWeightedPointsAgainst) / 2

	baseMargin := homeExpected - awayExpected + b.HomeAdvantage

	momentum := (v.HomeRecentMargin5 - v.AwayRecentMargin5) * b.MomentumWeight

	restAdj := 0.0
	if v.HomeB2B == 1 {
		restAdj -= 2.5
	}
	if v.AwayB2B == 1 {
		restAdj += 2.5
	}
	restAdj += clamp(v.RestDiff, -2, 2) * 0.5

	raw := baseMargin + momentum + restAdj
	return raw * (1 - b.RegressionFactor)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
