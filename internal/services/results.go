package services

import (
	"fmt"
	"strings"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/internal/narrative"
	"github.com/mfgagliardi0425/Plopdiction/internal/teams"
)

// GameResult is a final score in away-team terms, ready for grading.
type GameResult struct {
	HomePoints int     `json:"home_points"`
	AwayPoints int     `json:"away_points"`
	AwayMargin float64 `json:"away_margin"`
	HomeID     string  `json:"home_id"`
	AwayID     string  `json:"away_id"`
	HomeTeam   string  `json:"home_team"`
	AwayTeam   string  `json:"away_team"`
}

// ResultIndex matches predictions to finished games. Predictions may
// carry team ids, a "{away} @ {home}" matchup key, or just team names
// depending on when they were written, so the index keeps all three
// keyings of every result and Lookup tries them strongest first.
type ResultIndex struct {
	byID   map[string]*GameResult
	byKey  map[string]*GameResult
	byNorm map[string]*GameResult
}

// BuildResultIndex indexes every final game with a usable score.
func BuildResultIndex(games []models.Game) *ResultIndex {
	idx := &ResultIndex{
		byID:   make(map[string]*GameResult),
		byKey:  make(map[string]*GameResult),
		byNorm: make(map[string]*GameResult),
	}

	for _, g := range games {
		homePoints, homeOK := g.Home.ExtractPoints()
		awayPoints, awayOK := g.Away.ExtractPoints()
		if !homeOK || !awayOK {
			continue
		}

		homeID, homeName := g.Home.Display()
		awayID, awayName := g.Away.Display()

		r := &GameResult{
			HomePoints: homePoints,
			AwayPoints: awayPoints,
			AwayMargin: float64(awayPoints - homePoints),
			HomeID:     homeID,
			AwayID:     awayID,
			HomeTeam:   homeName,
			AwayTeam:   awayName,
		}

		idx.byKey[narrative.MatchupKey(awayName, homeName)] = r
		if homeID != "" && awayID != "" {
			idx.byID[fmt.Sprintf("%s@%s", awayID, homeID)] = r
		}
		awayNorm := teams.Normalize(awayName)
		homeNorm := teams.Normalize(homeName)
		if awayNorm != "" && homeNorm != "" {
			idx.byNorm[fmt.Sprintf("%s@%s", awayNorm, homeNorm)] = r
		}
	}
	return idx
}

// Len reports how many results are indexed by matchup key.
func (idx *ResultIndex) Len() int {
	return len(idx.byKey)
}

// Lookup resolves a prediction's game. Team ids win over the matchup
// key, which wins over normalized names. Missing fields are skipped
// rather than treated as empty matches.
func (idx *ResultIndex) Lookup(awayID, homeID, matchupKey, awayTeam, homeTeam string) (*GameResult, bool) {
	if awayID != "" && homeID != "" {
		if r, ok := idx.byID[fmt.Sprintf("%s@%s", awayID, homeID)]; ok {
			return r, true
		}
	}
	if matchupKey != "" {
		if r, ok := idx.byKey[matchupKey]; ok {
			return r, true
		}
	}

	if (awayTeam == "" || homeTeam == "") && strings.Contains(matchupKey, " @ ") {
		parts := strings.SplitN(matchupKey, " @ ", 2)
		awayTeam, homeTeam = parts[0], parts[1]
	}
	if awayTeam != "" && homeTeam != "" {
		normKey := fmt.Sprintf("%s@%s", teams.Normalize(awayTeam), teams.Normalize(homeTeam))
		if r, ok := idx.byNorm[normKey]; ok {
			return r, true
		}
	}
	return nil, false
}
