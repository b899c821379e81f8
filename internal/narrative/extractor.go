package narrative

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
)

const (
	// ClutchWindowSeconds is the final five minutes of regulation Q4
	ClutchWindowSeconds = 5 * 60

	// BlownLeadThreshold is the minimum peak lead, in points, for the
	// eventual loser to be charged with a blown lead
	BlownLeadThreshold = 10
)

var (
	ErrNotFinal     = errors.New("game is not final")
	ErrNoDate       = errors.New("game has no parseable date")
	ErrNoPlayByPlay = errors.New("game has no play-by-play periods")
)

// GameNarrative holds the storyline metrics mined from one game's
// play-by-play log.
type GameNarrative struct {
	Game             string    `json:"game"`
	GameDate         time.Time `json:"game_date"`
	HomeTeam         string    `json:"home_team"`
	AwayTeam         string    `json:"away_team"`
	HomePoints       int       `json:"home_points"`
	AwayPoints       int       `json:"away_points"`
	MaxHomeLead      int       `json:"max_home_lead"`
	MaxAwayLead      int       `json:"max_away_lead"`
	BlownLeadTeam    string    `json:"blown_lead_team,omitempty"`
	BlownLeadSide    string    `json:"blown_lead_side,omitempty"`
	ClutchHomePoints int       `json:"clutch_home_points"`
	ClutchAwayPoints int       `json:"clutch_away_points"`
	ClutchMargin     int       `json:"clutch_margin"`
}

// MatchupKey builds the "{away} @ {home}" cache key for a pairing
func MatchupKey(awayTeam, homeTeam string) string {
	return fmt.Sprintf("%s @ %s", awayTeam, homeTeam)
}

// Extract scans a completed game's play-by-play events and computes max
// leads, blown-lead attribution and the clutch-window scoring margin.
// The scan is a pure function of the record: re-running it yields
// identical output.
//
// Max leads consider every event in every period, overtime included; the
// clutch window is restricted to the last five minutes of the regulation
// fourth quarter. The asymmetry is intentional and matches how the
// metrics were validated.
func Extract(game models.Game) (*GameNarrative, error) {
	if !game.IsFinal() {
		return nil, ErrNotFinal
	}

	gameDate, ok := game.Date()
	if !ok {
		return nil, ErrNoDate
	}

	if len(game.Periods) == 0 {
		return nil, ErrNoPlayByPlay
	}

	_, homeName := game.Home.Display()
	_, awayName := game.Away.Display()
	homePoints, homeOK := game.Home.ExtractPoints()
	awayPoints, awayOK := game.Away.ExtractPoints()
	if !homeOK || !awayOK {
		homePoints, awayPoints = 0, 0
	}

	maxHomeLead := 0
	maxAwayLead := 0
	clutchHome := 0
	clutchAway := 0

	lastHome := 0
	lastAway := 0

	for _, period := range game.Periods {
		for _, evt := range period.Events {
			if evt.HomePoints == nil || evt.AwayPoints == nil {
				continue
			}
			home := *evt.HomePoints
			away := *evt.AwayPoints

			lead := home - away
			if lead > maxHomeLead {
				maxHomeLead = lead
			}
			if -lead > maxAwayLead {
				maxAwayLead = -lead
			}

			if period.Type == "quarter" && period.Number == 4 {
				if seconds, clockOK := parseClock(evt.Clock); clockOK && seconds <= ClutchWindowSeconds {
					if home > lastHome {
						clutchHome += home - lastHome
					}
					if away > lastAway {
						clutchAway += away - lastAway
					}
				}
			}

			lastHome = home
			lastAway = away
		}
	}

	narrative := &GameNarrative{
		Game:             MatchupKey(awayName, homeName),
		GameDate:         gameDate,
		HomeTeam:         homeName,
		AwayTeam:         awayName,
		HomePoints:       homePoints,
		AwayPoints:       awayPoints,
		MaxHomeLead:      maxHomeLead,
		MaxAwayLead:      maxAwayLead,
		ClutchHomePoints: clutchHome,
		ClutchAwayPoints: clutchAway,
		ClutchMargin:     clutchHome - clutchAway,
	}

	// Only the eventual loser can blow a lead, so at most one side is
	// flagged per game.
	finalMargin := homePoints - awayPoints
	if maxHomeLead >= BlownLeadThreshold && finalMargin < 0 {
		narrative.BlownLeadTeam = homeName
		narrative.BlownLeadSide = "home"
	}
	if maxAwayLead >= BlownLeadThreshold && finalMargin > 0 {
		narrative.BlownLeadTeam = awayName
		narrative.BlownLeadSide = "away"
	}

	return narrative, nil
}

// parseClock converts a "MM:SS" game clock to remaining seconds
func parseClock(clock string) (int, bool) {
	if clock == "" || !strings.Contains(clock, ":") {
		return 0, false
	}
	parts := strings.SplitN(clock, ":", 2)
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return mins*60 + secs, true
}
