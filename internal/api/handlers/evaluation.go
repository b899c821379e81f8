package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/internal/services"
	"github.com/mfgagliardi0425/Plopdiction/pkg/database"
	"github.com/mfgagliardi0425/Plopdiction/pkg/utils"
)

// EvaluationHandler exposes stored evaluation runs and triggers new
// ones.
type EvaluationHandler struct {
	db       *database.DB
	pipeline *services.PipelineService
}

func NewEvaluationHandler(db *database.DB, pipeline *services.PipelineService) *EvaluationHandler {
	return &EvaluationHandler{
		db:       db,
		pipeline: pipeline,
	}
}

// RunEvaluation collects a date's finished games and grades the stored
// predictions against them.
// POST /evaluations/:date
func (h *EvaluationHandler) RunEvaluation(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	games, err := h.pipeline.CollectGames(ctx, date, date)
	if err != nil {
		utils.SendInternalError(c, "Failed to collect games for evaluation")
		return
	}

	run, err := h.pipeline.EvaluateDate(ctx, date, games)
	if err != nil {
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, run)
}

// GetEvaluation returns the most recent run for a date, including its
// graded games.
// GET /evaluations/:date
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var run models.EvaluationRun
	err := h.db.Preload("Games").
		Where("game_date = ?", date).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		utils.SendNotFound(c, "No evaluation run for this date")
		return
	}
	utils.SendSuccess(c, run)
}

// GetThresholdSweep replays a run's graded games across the configured
// minimum-edge grid.
// GET /threshold-sweeps/:id
func (h *EvaluationHandler) GetThresholdSweep(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid run id", "id must be a UUID")
		return
	}

	results, err := h.pipeline.SweepThresholds(c.Request.Context(), runID.String())
	if err != nil {
		utils.SendInternalError(c, "Threshold sweep failed")
		return
	}
	utils.SendSuccess(c, results)
}

// ListPredictions returns the stored predictions for a date.
// GET /predictions/:date
func (h *EvaluationHandler) ListPredictions(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var preds []models.PredictionRecord
	if err := h.db.Where("game_date = ?", date).Order("matchup_key").Find(&preds).Error; err != nil {
		utils.SendInternalError(c, "Failed to load predictions")
		return
	}
	utils.SendSuccessWithMeta(c, preds, &utils.Meta{Total: int64(len(preds))})
}

func parseDateParam(c *gin.Context) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		utils.SendValidationError(c, "Invalid date", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
