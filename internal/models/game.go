package models

import (
	"strings"
	"time"
)

// Game is a raw game record as delivered by the games API. Optional pieces
// (points, play-by-play periods) stay explicit pointers/slices so missing
// data is distinguishable from zero values.
type Game struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Scheduled string   `json:"scheduled"`
	Home      TeamSide `json:"home"`
	Away      TeamSide `json:"away"`
	Periods   []Period `json:"periods,omitempty"`
}

// TeamSide is one side of a game record
type TeamSide struct {
	ID      string   `json:"id"`
	Market  string   `json:"market"`
	Name    string   `json:"name"`
	Alias   string   `json:"alias,omitempty"`
	Points  *int     `json:"points,omitempty"`
	Scoring *Scoring `json:"scoring,omitempty"`
}

// Scoring is the nested scoring object some feeds use instead of a
// top-level points field
type Scoring struct {
	Points *int `json:"points"`
}

// Period is one quarter/overtime of play-by-play data
type Period struct {
	Type   string  `json:"type"`
	Number int     `json:"number"`
	Events []Event `json:"events,omitempty"`
}

// Event is a single play-by-play event carrying cumulative totals
type Event struct {
	EventType  string `json:"event_type,omitempty"`
	Clock      string `json:"clock,omitempty"`
	HomePoints *int   `json:"home_points,omitempty"`
	AwayPoints *int   `json:"away_points,omitempty"`
}

var finalStatuses = map[string]struct{}{
	"closed":    {},
	"complete":  {},
	"completed": {},
	"final":     {},
}

// IsFinal reports whether the game has a completed status
func (g Game) IsFinal() bool {
	_, ok := finalStatuses[strings.ToLower(g.Status)]
	return ok
}

// Date parses the scheduled timestamp into a UTC calendar date.
// The boolean is false when the timestamp is missing or unparseable.
func (g Game) Date() (time.Time, bool) {
	if g.Scheduled == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, g.Scheduled)
	if err != nil {
		return time.Time{}, false
	}
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), true
}

// ExtractPoints returns the final point total for one side, checking the
// direct field first and the nested scoring object second.
func (t TeamSide) ExtractPoints() (int, bool) {
	if t.Points != nil {
		return *t.Points, true
	}
	if t.Scoring != nil && t.Scoring.Points != nil {
		return *t.Scoring.Points, true
	}
	return 0, false
}

// Display returns the team id and its display name ("Market Name",
// falling back to alias, then id).
func (t TeamSide) Display() (string, string) {
	id := t.ID
	if id == "" {
		id = "unknown"
	}
	display := strings.TrimSpace(t.Market + " " + t.Name)
	if display == "" {
		display = t.Alias
	}
	if display == "" {
		display = id
	}
	return id, display
}
