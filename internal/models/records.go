package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NarrativeRecord is a persisted game narrative, keyed by the
// "{away} @ {home}" matchup string.
type NarrativeRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MatchupKey       string    `gorm:"uniqueIndex;not null" json:"game"`
	GameDate         time.Time `gorm:"index;not null" json:"game_date"`
	HomeTeam         string    `gorm:"not null" json:"home_team"`
	AwayTeam         string    `gorm:"not null" json:"away_team"`
	HomePoints       int       `json:"home_points"`
	AwayPoints       int       `json:"away_points"`
	MaxHomeLead      int       `json:"max_home_lead"`
	MaxAwayLead      int       `json:"max_away_lead"`
	BlownLeadTeam    string    `json:"blown_lead_team,omitempty"`
	BlownLeadSide    string    `json:"blown_lead_side,omitempty"`
	ClutchHomePoints int       `json:"clutch_home_points"`
	ClutchAwayPoints int       `json:"clutch_away_points"`
	ClutchMargin     int       `json:"clutch_margin"`
	CreatedAt        time.Time `json:"created_at"`
}

func (NarrativeRecord) TableName() string {
	return "game_narratives"
}

// PredictionRecord stores one matchup prediction saved ahead of tip-off,
// graded later against the actual result.
type PredictionRecord struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GameID             string    `gorm:"index" json:"game_id"`
	GameDate           time.Time `gorm:"index;not null" json:"game_date"`
	MatchupKey         string    `gorm:"index;not null" json:"game"`
	HomeID             string    `json:"home_id"`
	AwayID             string    `json:"away_id"`
	HomeTeam           string    `json:"home_team"`
	AwayTeam           string    `json:"away_team"`
	PredAwayMargin     float64   `json:"pred_away_margin"`
	PredAwayMarginAdj  float64   `json:"pred_away_margin_adj"`
	MarketSpread       float64   `json:"market_spread"`
	OpeningSpread      *float64  `json:"opening_spread,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func (PredictionRecord) TableName() string {
	return "predictions"
}

// EvaluationRun is one graded slate of predictions for a date.
type EvaluationRun struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GameDate          time.Time       `gorm:"index;not null" json:"date"`
	TotalGames        int             `json:"total_games"`
	GradedGames       int             `json:"graded_games"`
	Wins              int             `json:"wins"`
	Losses            int             `json:"losses"`
	Pushes            int             `json:"pushes"`
	ATSAccuracy       *float64        `json:"ats_accuracy,omitempty"`
	EdgeOpportunities int             `json:"edge_opportunities"`
	EdgeBets          int             `json:"edge_bets"`
	EdgeWins          int             `json:"edge_wins"`
	EdgeHitRate       *float64        `json:"edge_hit_rate,omitempty"`
	ModelMAE          *float64        `json:"model_mae,omitempty"`
	MarketMAE         *float64        `json:"market_mae,omitempty"`
	Thresholds        pq.Float64Array `gorm:"type:float8[]" json:"thresholds,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`

	// Associations
	Games []GradedGameRecord `gorm:"foreignKey:RunID" json:"games,omitempty"`
}

func (EvaluationRun) TableName() string {
	return "evaluation_runs"
}

// GradedGameRecord is one graded bet inside an evaluation run.
type GradedGameRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RunID        uuid.UUID `gorm:"type:uuid;index;not null" json:"run_id"`
	MatchupKey   string    `gorm:"not null" json:"game"`
	LineAway     float64   `json:"line_away"`
	PredLineAway float64   `json:"pred_line_away"`
	ActualAway   float64   `json:"actual_line_away"`
	ActualDiff   float64   `json:"actual_diff"`
	PredDiff     float64   `json:"pred_diff"`
	Result       string    `gorm:"not null" json:"result"`
	Edge         float64   `json:"edge"`
	EdgePick     string    `json:"edge_pick"`
	EdgeHit      *bool     `json:"edge_hit,omitempty"`
	ModelError   float64   `json:"model_error"`
	MarketError  float64   `json:"market_error"`
	CreatedAt    time.Time `json:"created_at"`
}

func (GradedGameRecord) TableName() string {
	return "graded_games"
}

// InjuryReportRecord archives the per-team penalty derived from a day's
// injury snapshot, with the players it was based on.
type InjuryReportRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ReportDate time.Time      `gorm:"index;not null" json:"date"`
	Team       string         `gorm:"index;not null" json:"team"`
	PlayersOut pq.StringArray `gorm:"type:text[]" json:"players_out"`
	Penalty    float64        `json:"penalty"`
	FetchedAt  time.Time      `json:"fetched_at"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (InjuryReportRecord) TableName() string {
	return "injury_reports"
}
