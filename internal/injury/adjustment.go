package injury

import (
	"strings"
	"time"
)

// PointsPerPPG scales a player's scoring average into spread points.
// A 20 PPG scorer sitting out is worth roughly 3 points.
const PointsPerPPG = 0.15

// rankMultiplier boosts the penalty for a team's top scorers, keyed by
// 1-based PPG rank within the team. Ranks past 5 get no boost.
var rankMultiplier = map[int]float64{
	1: 1.8,
	2: 1.5,
	3: 1.3,
	4: 1.15,
	5: 1.1,
}

// Entry is one player's line on a team's injury report.
type Entry struct {
	Player        string  `json:"player"`
	Status        string  `json:"status"`
	PointsPerGame float64 `json:"ppg"`
	Rank          int     `json:"ppg_rank,omitempty"`
}

// Snapshot is a day's injury report, captured once and treated as
// read-only for the rest of the run. FetchedAt records when the report
// was pulled so stale snapshots can be detected.
type Snapshot struct {
	Date      time.Time          `json:"date"`
	FetchedAt time.Time          `json:"fetched_at"`
	Teams     map[string][]Entry `json:"teams"`
}

// Penalty converts one report entry into spread points. Only players
// listed "out" carry a penalty; questionable and probable players are
// ignored entirely.
func (e Entry) Penalty() float64 {
	if !strings.EqualFold(strings.TrimSpace(e.Status), "out") {
		return 0
	}
	base := e.PointsPerGame * PointsPerPPG
	if e.Rank > 0 {
		mult, ok := rankMultiplier[e.Rank]
		if !ok {
			mult = 1.0
		}
		return base * mult
	}
	return base * ppgMultiplier(e.PointsPerGame)
}

// ppgMultiplier approximates the rank boost when no rank is known,
// bucketing by raw scoring average.
func ppgMultiplier(ppg float64) float64 {
	switch {
	case ppg >= 25:
		return 1.8
	case ppg >= 20:
		return 1.5
	case ppg >= 15:
		return 1.3
	case ppg >= 10:
		return 1.15
	default:
		return 1.0
	}
}

// TeamPenalty sums the penalties of a team's listed players. Unknown
// teams cost nothing.
func (s *Snapshot) TeamPenalty(team string) float64 {
	if s == nil {
		return 0
	}
	total := 0.0
	for _, e := range s.Teams[team] {
		total += e.Penalty()
	}
	return total
}

// AdjustAwayMargin applies both teams' penalties to a predicted away
// margin. An away-side absence lowers the away margin, a home-side
// absence raises it.
func (s *Snapshot) AdjustAwayMargin(awayTeam, homeTeam string, predAwayMargin float64) float64 {
	return predAwayMargin - s.TeamPenalty(awayTeam) + s.TeamPenalty(homeTeam)
}
