package ats

import "math"

// GradedGame is one game with both sides of the book known, used for
// sweeping edge thresholds after the fact.
type GradedGame struct {
	AwayMargin     float64 `json:"away_margin"`
	PredAwayMargin float64 `json:"pred_away_margin"`
	Line           float64 `json:"line"`
}

// ThresholdResult reports how a single minimum-edge cutoff would have
// performed. Accuracy is nil when no non-push bets cleared the cutoff.
type ThresholdResult struct {
	Threshold float64  `json:"threshold"`
	Bets      int      `json:"bets"`
	Accuracy  *float64 `json:"accuracy"`
}

// DefaultThresholds is the standard sweep grid.
var DefaultThresholds = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}

// EvaluateThresholds sweeps minimum-edge cutoffs over a set of graded
// games. Games with no recorded line (line == 0) are excluded up front,
// and pushes are dropped from each bucket before accuracy is taken.
// Raising the cutoff can only shrink the bet count.
func EvaluateThresholds(games []GradedGame, thresholds []float64) []ThresholdResult {
	if thresholds == nil {
		thresholds = DefaultThresholds
	}

	valid := make([]GradedGame, 0, len(games))
	for _, g := range games {
		if math.Abs(g.Line) > 0 {
			valid = append(valid, g)
		}
	}

	results := make([]ThresholdResult, 0, len(thresholds))
	for _, t := range thresholds {
		bets, wins := 0, 0
		for _, g := range valid {
			predDiff := g.PredAwayMargin + g.Line
			if predDiff < t && predDiff > -t {
				continue
			}
			actualDiff := g.AwayMargin + g.Line
			if actualDiff == 0 {
				continue
			}
			bets++
			if (predDiff > 0) == (actualDiff > 0) {
				wins++
			}
		}
		r := ThresholdResult{Threshold: t, Bets: bets}
		if bets > 0 {
			acc := float64(wins) / float64(bets)
			r.Accuracy = &acc
		}
		results = append(results, r)
	}
	return results
}
