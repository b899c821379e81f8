package history

import (
	"sort"
	"time"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
)

// GameResult is one team's outcome in one completed game.
type GameResult struct {
	GameID        string    `json:"game_id"`
	GameDate      time.Time `json:"game_date"`
	IsHome        bool      `json:"is_home"`
	PointsFor     int       `json:"points_for"`
	PointsAgainst int       `json:"points_against"`
	OpponentID    string    `json:"opponent_id"`
}

// Margin is the signed point margin from this team's perspective
func (g GameResult) Margin() int {
	return g.PointsFor - g.PointsAgainst
}

// Store holds chronological per-team game logs built from raw game records.
// It is immutable after Build; callers receive copies of the underlying
// slices via GamesBefore and may not observe later mutation.
type Store struct {
	games map[string][]GameResult
	names map[string]string
}

// Build constructs a Store from raw game records. Records that are not
// final, lack a parseable date, or are missing points are dropped; a bad
// record never aborts the build.
func Build(games []models.Game) *Store {
	s := &Store{
		games: make(map[string][]GameResult),
		names: make(map[string]string),
	}

	for _, game := range games {
		if !game.IsFinal() || game.ID == "" {
			continue
		}

		gameDate, ok := game.Date()
		if !ok {
			continue
		}

		homePoints, homeOK := game.Home.ExtractPoints()
		awayPoints, awayOK := game.Away.ExtractPoints()
		if !homeOK || !awayOK {
			continue
		}

		homeID, homeName := game.Home.Display()
		awayID, awayName := game.Away.Display()

		s.names[homeID] = homeName
		s.names[awayID] = awayName

		s.games[homeID] = append(s.games[homeID], GameResult{
			GameID:        game.ID,
			GameDate:      gameDate,
			IsHome:        true,
			PointsFor:     homePoints,
			PointsAgainst: awayPoints,
			OpponentID:    awayID,
		})
		s.games[awayID] = append(s.games[awayID], GameResult{
			GameID:        game.ID,
			GameDate:      gameDate,
			IsHome:        false,
			PointsFor:     awayPoints,
			PointsAgainst: homePoints,
			OpponentID:    homeID,
		})
	}

	for teamID := range s.games {
		log := s.games[teamID]
		sort.SliceStable(log, func(i, j int) bool {
			return log[i].GameDate.Before(log[j].GameDate)
		})
	}

	return s
}

// Games returns the full chronological log for a team. Unknown teams
// yield an empty slice.
func (s *Store) Games(teamID string) []GameResult {
	log := s.games[teamID]
	out := make([]GameResult, len(log))
	copy(out, log)
	return out
}

// GamesBefore returns the team's games strictly earlier than cutoff.
// This is the leakage guard: results dated on or after the cutoff are
// never visible to stats or feature computation.
func (s *Store) GamesBefore(teamID string, cutoff time.Time) []GameResult {
	var out []GameResult
	for _, g := range s.games[teamID] {
		if g.GameDate.Before(cutoff) {
			out = append(out, g)
		}
	}
	return out
}

// Name returns the display name recorded for a team, falling back to
// the id itself.
func (s *Store) Name(teamID string) string {
	if name, ok := s.names[teamID]; ok {
		return name
	}
	return teamID
}

// Teams returns all team ids with at least one completed game, sorted
// for deterministic iteration.
func (s *Store) Teams() []string {
	teams := make([]string, 0, len(s.games))
	for teamID := range s.games {
		teams = append(teams, teamID)
	}
	sort.Strings(teams)
	return teams
}
