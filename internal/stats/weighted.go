package stats

import (
	"math"
	"time"

	"github.com/mfgagliardi0425/Plopdiction/internal/history"
)

// DefaultHalfLife is the number of games after which a game's weight
// decays to 50%.
const DefaultHalfLife = 10.0

// TeamStats is a team's form as of a cutoff date, recomputed on demand
// from its game log.
type TeamStats struct {
	TeamID                string    `json:"team_id"`
	Name                  string    `json:"name"`
	WeightedWinPct        float64   `json:"weighted_win_pct"`
	WeightedMargin        float64   `json:"weighted_margin"`
	WeightedHomeMargin    float64   `json:"weighted_home_margin"`
	WeightedAwayMargin    float64   `json:"weighted_away_margin"`
	WeightedPointsFor     float64   `json:"weighted_points_for"`
	WeightedPointsAgainst float64   `json:"weighted_points_against"`
	Recent10WinPct        float64   `json:"recent_10_win_pct"`
	GamesPlayed           int       `json:"games_played"`
	LastGameDate          time.Time `json:"last_game_date"`
}

// defaultSnapshot is the defined neutral form for a team with no usable
// history: even win percentage, zero margins. Callers such as the feature
// builder must still treat zero prior games as a hard skip.
func defaultSnapshot(teamID, name string) TeamStats {
	return TeamStats{
		TeamID:         teamID,
		Name:           name,
		WeightedWinPct: 0.5,
		Recent10WinPct: 0.5,
	}
}

// weighted computes the weight-normalized win%, margin, points-for and
// points-against over an entire game sequence. Weight of the game k games
// before the most recent one is 0.5^(k/halfLife), so weight(0) = 1 and the
// weight strictly decreases with games-ago. The false return covers an
// empty sequence or degenerate zero total weight.
func weighted(games []history.GameResult, halfLife float64) (winPct, margin, pointsFor, pointsAgainst float64, ok bool) {
	if len(games) == 0 {
		return 0, 0, 0, 0, false
	}

	total := 0.0
	weightedWins := 0.0
	weightedMargin := 0.0
	weightedFor := 0.0
	weightedAgainst := 0.0

	mostRecent := len(games) - 1
	for idx, game := range games {
		gamesAgo := float64(mostRecent - idx)
		weight := math.Pow(0.5, gamesAgo/halfLife)

		total += weight
		if game.Margin() > 0 {
			weightedWins += weight
		}
		weightedMargin += weight * float64(game.Margin())
		weightedFor += weight * float64(game.PointsFor)
		weightedAgainst += weight * float64(game.PointsAgainst)
	}

	if total == 0 {
		return 0, 0, 0, 0, false
	}

	return weightedWins / total, weightedMargin / total, weightedFor / total, weightedAgainst / total, true
}

// Compute builds the decayed snapshot for a team from its chronological
// game log (oldest to newest). A team with zero games, or a degenerate
// zero total weight, yields the defined default snapshot rather than a
// division fault.
func Compute(teamID, name string, games []history.GameResult, halfLife float64) TeamStats {
	winPct, margin, pointsFor, pointsAgainst, ok := weighted(games, halfLife)
	if !ok {
		return defaultSnapshot(teamID, name)
	}

	var homeGames, awayGames []history.GameResult
	for _, g := range games {
		if g.IsHome {
			homeGames = append(homeGames, g)
		} else {
			awayGames = append(awayGames, g)
		}
	}

	// Split margins fall back to the overall weighted margin when the
	// home-only or away-only subsequence is empty.
	homeMargin := margin
	if _, m, _, _, splitOK := weighted(homeGames, halfLife); splitOK {
		homeMargin = m
	}
	awayMargin := margin
	if _, m, _, _, splitOK := weighted(awayGames, halfLife); splitOK {
		awayMargin = m
	}

	return TeamStats{
		TeamID:                teamID,
		Name:                  name,
		WeightedWinPct:        winPct,
		WeightedMargin:        margin,
		WeightedHomeMargin:    homeMargin,
		WeightedAwayMargin:    awayMargin,
		WeightedPointsFor:     pointsFor,
		WeightedPointsAgainst: pointsAgainst,
		Recent10WinPct:        RecentWinPct(games, 10),
		GamesPlayed:           len(games),
		LastGameDate:          lastGameDate(games),
	}
}

func lastGameDate(games []history.GameResult) time.Time {
	if len(games) == 0 {
		return time.Time{}
	}
	return games[len(games)-1].GameDate
}

func lastN(games []history.GameResult, n int) []history.GameResult {
	if len(games) > n {
		return games[len(games)-n:]
	}
	return games
}

// RecentAvg is the unweighted simple mean of a per-game value over the
// last n games (or all games if fewer exist). Deliberately distinct from
// the decayed metrics: recent-N form ignores the half-life entirely.
func RecentAvg(games []history.GameResult, n int, value func(history.GameResult) float64) float64 {
	recent := lastN(games, n)
	if len(recent) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, g := range recent {
		sum += value(g)
	}
	return sum / float64(len(recent))
}

// RecentMargin is the simple mean margin over the last n games
func RecentMargin(games []history.GameResult, n int) float64 {
	return RecentAvg(games, n, func(g history.GameResult) float64 { return float64(g.Margin()) })
}

// RecentPointsFor is the simple mean points scored over the last n games
func RecentPointsFor(games []history.GameResult, n int) float64 {
	return RecentAvg(games, n, func(g history.GameResult) float64 { return float64(g.PointsFor) })
}

// RecentPointsAgainst is the simple mean points allowed over the last n games
func RecentPointsAgainst(games []history.GameResult, n int) float64 {
	return RecentAvg(games, n, func(g history.GameResult) float64 { return float64(g.PointsAgainst) })
}

// RecentWinPct is the win rate over the last n games (0.0 with no games)
func RecentWinPct(games []history.GameResult, n int) float64 {
	recent := lastN(games, n)
	if len(recent) == 0 {
		return 0.0
	}
	wins := 0
	for _, g := range recent {
		if g.Margin() > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(recent))
}

// HeadToHead filters the home team's log to prior meetings with the away
// team and reports average margin, win rate and meeting count. Zero
// results mean no prior meetings, which is neutral, not an error.
func HeadToHead(homeGames []history.GameResult, awayID string) (avgMargin, winPct float64, count int) {
	var meetings []history.GameResult
	for _, g := range homeGames {
		if g.OpponentID == awayID {
			meetings = append(meetings, g)
		}
	}
	if len(meetings) == 0 {
		return 0.0, 0.0, 0
	}

	marginSum := 0.0
	wins := 0
	for _, g := range meetings {
		marginSum += float64(g.Margin())
		if g.Margin() > 0 {
			wins++
		}
	}
	return marginSum / float64(len(meetings)), float64(wins) / float64(len(meetings)), len(meetings)
}

// RestProfile derives schedule signals for a matchup date:
// restDiff = home days since last game minus away days since last game,
// and each side's back-to-back flag, 1.0 iff its gap is 0 days.
func RestProfile(gameDate, homeLast, awayLast time.Time) (restDiff, homeB2B, awayB2B float64) {
	if homeLast.IsZero() || awayLast.IsZero() {
		return 0.0, 0.0, 0.0
	}
	homeRest := daysBetween(homeLast, gameDate)
	awayRest := daysBetween(awayLast, gameDate)
	restDiff = float64(homeRest - awayRest)
	if homeRest == 0 {
		homeB2B = 1.0
	}
	if awayRest == 0 {
		awayB2B = 1.0
	}
	return restDiff, homeB2B, awayB2B
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
