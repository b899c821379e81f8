package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfgagliardi0425/Plopdiction/internal/features"
	"github.com/mfgagliardi0425/Plopdiction/internal/predictor"
	"github.com/mfgagliardi0425/Plopdiction/internal/services"
	"github.com/mfgagliardi0425/Plopdiction/pkg/config"
	"github.com/mfgagliardi0425/Plopdiction/pkg/utils"
)

// FeatureHandler serves feature vectors and baseline predictions built
// from the current snapshot.
type FeatureHandler struct {
	snapshots *services.SnapshotService
	baseline  *predictor.Baseline
	cfg       *config.Config
}

func NewFeatureHandler(snapshots *services.SnapshotService, cfg *config.Config) *FeatureHandler {
	base := predictor.NewBaseline()
	base.HomeAdvantage = cfg.HomeAdvantage
	base.MomentumWeight = cfg.MomentumWeight
	base.RegressionFactor = cfg.RegressionFactor

	return &FeatureHandler{
		snapshots: snapshots,
		baseline:  base,
		cfg:       cfg,
	}
}

type featureResponse struct {
	HomeID          string           `json:"home_id"`
	AwayID          string           `json:"away_id"`
	GameDate        string           `json:"game_date"`
	SnapshotBuiltAt time.Time        `json:"snapshot_built_at"`
	Features        *features.Vector `json:"features"`
	PredAwayMargin  float64          `json:"pred_away_margin"`
}

// GetFeatures builds the feature vector for one matchup.
// GET /features?home_id=&away_id=&date=&market_spread=&opening_spread=
func (h *FeatureHandler) GetFeatures(c *gin.Context) {
	homeID := c.Query("home_id")
	awayID := c.Query("away_id")
	if homeID == "" || awayID == "" {
		utils.SendValidationError(c, "Missing team ids", "home_id and away_id are required")
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	gameDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.SendValidationError(c, "Invalid date", "date must be YYYY-MM-DD")
		return
	}

	marketSpread := 0.0
	if raw := c.Query("market_spread"); raw != "" {
		marketSpread, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.SendValidationError(c, "Invalid market_spread", err.Error())
			return
		}
	}

	var openingSpread *float64
	if raw := c.Query("opening_spread"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.SendValidationError(c, "Invalid opening_spread", err.Error())
			return
		}
		openingSpread = &v
	}

	builder, builtAt, ok := h.snapshots.Builder(h.cfg.HalfLifeGames)
	if !ok {
		utils.SendError(c, http.StatusServiceUnavailable, utils.NewAppError(utils.ErrCodeUnavailable, "Snapshot not built yet"))
		return
	}

	vec, err := builder.Build(homeID, awayID, gameDate, marketSpread, openingSpread)
	if err != nil {
		if errors.Is(err, features.ErrInsufficientHistory) {
			utils.SendInsufficientHistory(c, "One or both teams have no completed games before this date")
			return
		}
		utils.SendInternalError(c, "Failed to build features")
		return
	}

	utils.SendSuccess(c, featureResponse{
		HomeID:          homeID,
		AwayID:          awayID,
		GameDate:        dateStr,
		SnapshotBuiltAt: builtAt,
		Features:        vec,
		PredAwayMargin:  h.baseline.PredictAwayMargin(vec),
	})
}

// GetSchema returns the fixed feature column order.
func (h *FeatureHandler) GetSchema(c *gin.Context) {
	utils.SendSuccess(c, gin.H{
		"fields": features.FieldNames,
		"count":  len(features.FieldNames),
	})
}
