package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfgagliardi0425/Plopdiction/internal/injury"
	"github.com/mfgagliardi0425/Plopdiction/internal/services"
	"github.com/mfgagliardi0425/Plopdiction/pkg/config"
	"github.com/mfgagliardi0425/Plopdiction/pkg/utils"
)

// PredictionHandler saves predictions for an upcoming slate.
type PredictionHandler struct {
	pipeline *services.PipelineService
	cfg      *config.Config
}

func NewPredictionHandler(pipeline *services.PipelineService, cfg *config.Config) *PredictionHandler {
	return &PredictionHandler{
		pipeline: pipeline,
		cfg:      cfg,
	}
}

// predictionRequest carries the market lines for the slate, keyed by
// "{away} @ {home}", and optionally the day's injury report.
type predictionRequest struct {
	Spreads  map[string]services.SpreadLine `json:"spreads" binding:"required"`
	Injuries *injury.Snapshot               `json:"injuries,omitempty"`
}

// CreatePredictions builds features for every game on a date's slate
// and stores raw and injury-adjusted predictions.
// POST /predictions/:date
func (h *PredictionHandler) CreatePredictions(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	ctx := c.Request.Context()
	historyGames, err := h.pipeline.CollectGames(ctx, h.cfg.SeasonStart, date.AddDate(0, 0, -1))
	if err != nil {
		utils.SendInternalError(c, "Failed to collect history games")
		return
	}
	slate, err := h.pipeline.CollectGames(ctx, date, date)
	if err != nil {
		utils.SendInternalError(c, "Failed to collect slate games")
		return
	}

	preds, err := h.pipeline.PredictSlate(ctx, date, historyGames, slate, req.Spreads, req.Injuries)
	if err != nil {
		utils.SendInternalError(c, "Failed to save predictions")
		return
	}

	if req.Injuries != nil {
		if req.Injuries.FetchedAt.IsZero() {
			req.Injuries.FetchedAt = time.Now().UTC()
		}
		if err := h.pipeline.SaveInjuryReport(ctx, req.Injuries); err != nil {
			utils.SendInternalError(c, "Failed to archive injury report")
			return
		}
	}

	utils.SendSuccessWithMeta(c, preds, &utils.Meta{Total: int64(len(preds))})
}
