package narrative

import (
	"sort"
	"time"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
)

// TeamEntry is one game's narrative signal from a single team's
// perspective: the clutch margin signed for that team, its own peak
// lead, and whether it blew one.
type TeamEntry struct {
	GameDate     time.Time `json:"game_date"`
	ClutchMargin float64   `json:"clutch_margin"`
	MaxLead      float64   `json:"max_lead"`
	BlewLead     bool      `json:"blew_lead"`
}

// History is the per-team chronological index of narrative entries,
// keyed by team id.
type History map[string][]TeamEntry

// BuildHistory rebuilds the per-team narrative index from raw game
// records. Games without usable play-by-play data are skipped.
func BuildHistory(games []models.Game) History {
	h := make(History)

	for _, game := range games {
		n, err := Extract(game)
		if err != nil {
			continue
		}

		homeID := game.Home.ID
		awayID := game.Away.ID
		if homeID == "" || awayID == "" {
			continue
		}

		h[homeID] = append(h[homeID], TeamEntry{
			GameDate:     n.GameDate,
			ClutchMargin: float64(n.ClutchMargin),
			MaxLead:      float64(n.MaxHomeLead),
			BlewLead:     n.BlownLeadSide == "home",
		})
		h[awayID] = append(h[awayID], TeamEntry{
			GameDate:     n.GameDate,
			ClutchMargin: -float64(n.ClutchMargin),
			MaxLead:      float64(n.MaxAwayLead),
			BlewLead:     n.BlownLeadSide == "away",
		})
	}

	for teamID := range h {
		entries := h[teamID]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].GameDate.Before(entries[j].GameDate)
		})
	}

	return h
}

// Before returns a team's entries strictly earlier than the cutoff date,
// mirroring the history store's leakage guard.
func (h History) Before(teamID string, cutoff time.Time) []TeamEntry {
	var out []TeamEntry
	for _, e := range h[teamID] {
		if e.GameDate.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func lastN(entries []TeamEntry, n int) []TeamEntry {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}

// BlownLeadRate is the share of the last n entries where the team blew
// a lead. Unweighted, matching the recent-N convention of the stats
// engine.
func BlownLeadRate(entries []TeamEntry, n int) float64 {
	recent := lastN(entries, n)
	if len(recent) == 0 {
		return 0.0
	}
	blew := 0
	for _, e := range recent {
		if e.BlewLead {
			blew++
		}
	}
	return float64(blew) / float64(len(recent))
}

// AvgClutchMargin is the simple mean signed clutch margin over the last
// n entries.
func AvgClutchMargin(entries []TeamEntry, n int) float64 {
	return recentAvg(entries, n, func(e TeamEntry) float64 { return e.ClutchMargin })
}

// AvgMaxLead is the simple mean peak lead over the last n entries
func AvgMaxLead(entries []TeamEntry, n int) float64 {
	return recentAvg(entries, n, func(e TeamEntry) float64 { return e.MaxLead })
}

func recentAvg(entries []TeamEntry, n int, value func(TeamEntry) float64) float64 {
	recent := lastN(entries, n)
	if len(recent) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, e := range recent {
		sum += value(e)
	}
	return sum / float64(len(recent))
}
