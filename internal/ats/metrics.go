// Package ats grades spread predictions against the closing line.
// All margins and lines are in away-team terms: a positive away margin
// means the away team won by that many points, and the line is the
// points given to the away team.
package ats

import (
	"errors"
	"math"
)

// ErrNoLine marks a prediction that cannot be graded because no betting
// line was recorded for the game.
var ErrNoLine = errors.New("no betting line recorded")

// Result is the against-the-spread outcome of one graded game.
type Result string

const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultPush Result = "PUSH"
)

// Pick is the side the model's edge points to.
type Pick string

const (
	PickAway Pick = "AWAY"
	PickHome Pick = "HOME"
	PickPush Pick = "PUSH"
)

// EdgeThreshold is the minimum absolute edge that counts as a bettable
// opportunity.
const EdgeThreshold = 3.0

// Metrics grades one game. ActualDiff and PredDiff are the actual and
// predicted away margins measured against the line, so their signs say
// which side covered. EdgeHit is nil when the game pushed or the model
// had no side, never false by default.
type Metrics struct {
	AwayMargin      float64 `json:"away_margin"`
	PredAwayMargin  float64 `json:"pred_away_margin"`
	Line            float64 `json:"line"`
	ActualDiff      float64 `json:"actual_diff"`
	PredDiff        float64 `json:"pred_diff"`
	Result          Result  `json:"result"`
	Edge            float64 `json:"edge"`
	EdgeOpportunity bool    `json:"edge_opportunity"`
	EdgePick        Pick    `json:"edge_pick"`
	EdgeHit         *bool   `json:"edge_hit"`
	ModelError      float64 `json:"model_error"`
	MarketError     float64 `json:"market_error"`
}

// Compute grades one game. A push is exactly actual_diff == 0; every
// other game is WIN when the model picked the covering side and LOSS
// otherwise, so wins + losses + pushes always equals games graded.
func Compute(awayMargin, predAwayMargin, line float64) Metrics {
	actualDiff := awayMargin + line
	predDiff := predAwayMargin + line

	var result Result
	switch {
	case actualDiff == 0:
		result = ResultPush
	case (actualDiff > 0) == (predDiff > 0):
		result = ResultWin
	default:
		result = ResultLoss
	}

	edge := predDiff
	pick := PickPush
	if edge > 0 {
		pick = PickAway
	} else if edge < 0 {
		pick = PickHome
	}

	var edgeHit *bool
	if actualDiff != 0 && pick != PickPush {
		hit := (edge > 0) == (actualDiff > 0)
		edgeHit = &hit
	}

	return Metrics{
		AwayMargin:      awayMargin,
		PredAwayMargin:  predAwayMargin,
		Line:            line,
		ActualDiff:      actualDiff,
		PredDiff:        predDiff,
		Result:          result,
		Edge:            edge,
		EdgeOpportunity: math.Abs(edge) >= EdgeThreshold,
		EdgePick:        pick,
		EdgeHit:         edgeHit,
		ModelError:      math.Abs(predAwayMargin - awayMargin),
		MarketError:     math.Abs(line - awayMargin),
	}
}

// Summary aggregates graded games. Rates are nil, not zero, when the
// denominator is empty so callers can tell "no record" from "0%".
type Summary struct {
	TotalGames        int      `json:"total_games"`
	GradedGames       int      `json:"graded_games"`
	Wins              int      `json:"wins"`
	Losses            int      `json:"losses"`
	Pushes            int      `json:"pushes"`
	ATSAccuracy       *float64 `json:"ats_accuracy"`
	EdgeOpportunities int      `json:"edge_opportunities"`
	EdgeBets          int      `json:"edge_bets"`
	EdgeWins          int      `json:"edge_wins"`
	EdgeHitRate       *float64 `json:"edge_hit_rate"`
	ModelMAE          *float64 `json:"model_mae"`
	MarketMAE         *float64 `json:"market_mae"`
}

// Summarize rolls per-game metrics into a record. Pushes count toward
// total games but not toward accuracy; edge bets are edge opportunities
// that did not push.
func Summarize(rows []Metrics) Summary {
	var s Summary
	var modelErr, marketErr float64

	for _, r := range rows {
		switch r.Result {
		case ResultWin:
			s.Wins++
		case ResultLoss:
			s.Losses++
		default:
			s.Pushes++
		}

		modelErr += r.ModelError
		marketErr += r.MarketError

		if r.EdgeOpportunity {
			s.EdgeOpportunities++
			if r.Result != ResultPush {
				s.EdgeBets++
				if r.EdgeHit != nil && *r.EdgeHit {
					s.EdgeWins++
				}
			}
		}
	}

	s.GradedGames = s.Wins + s.Losses
	s.TotalGames = s.GradedGames + s.Pushes

	if s.GradedGames > 0 {
		acc := float64(s.Wins) / float64(s.GradedGames)
		s.ATSAccuracy = &acc
	}
	if s.EdgeBets > 0 {
		rate := float64(s.EdgeWins) / float64(s.EdgeBets)
		s.EdgeHitRate = &rate
	}
	if n := len(rows); n > 0 {
		m := modelErr / float64(n)
		s.ModelMAE = &m
		k := marketErr / float64(n)
		s.MarketMAE = &k
	}
	return s
}
