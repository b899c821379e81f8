package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/internal/narrative"
	"github.com/mfgagliardi0425/Plopdiction/internal/services"
	"github.com/mfgagliardi0425/Plopdiction/pkg/database"
	"github.com/mfgagliardi0425/Plopdiction/pkg/utils"
)

// NarrativeHandler serves cached game narratives.
type NarrativeHandler struct {
	db    *database.DB
	cache *services.CacheService
}

func NewNarrativeHandler(db *database.DB, cache *services.CacheService) *NarrativeHandler {
	return &NarrativeHandler{
		db:    db,
		cache: cache,
	}
}

// GetNarrative looks up one game by its away and home team names.
// GET /narratives?away=&home=
func (h *NarrativeHandler) GetNarrative(c *gin.Context) {
	away := c.Query("away")
	home := c.Query("home")
	if away == "" || home == "" {
		utils.SendValidationError(c, "Missing team names", "away and home are required")
		return
	}

	// Cache first, database on a miss
	ctx := context.Background()
	var cached narrative.GameNarrative
	if err := h.cache.Get(ctx, services.NarrativeCacheKey(away, home), &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	} else if !errors.Is(err, services.ErrCacheMiss) {
		utils.SendInternalError(c, "Narrative cache lookup failed")
		return
	}

	key := narrative.MatchupKey(away, home)
	var rec models.NarrativeRecord
	if err := h.db.Where("matchup_key = ?", key).First(&rec).Error; err != nil {
		utils.SendNotFound(c, "No narrative recorded for this matchup")
		return
	}
	utils.SendSuccess(c, rec)
}

// ListNarratives returns every narrative recorded on a date.
// GET /narratives/:date
func (h *NarrativeHandler) ListNarratives(c *gin.Context) {
	dateStr := c.Param("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.SendValidationError(c, "Invalid date", "date must be YYYY-MM-DD")
		return
	}

	var recs []models.NarrativeRecord
	if err := h.db.Where("game_date = ?", date).Order("matchup_key").Find(&recs).Error; err != nil {
		utils.SendInternalError(c, "Failed to load narratives")
		return
	}

	utils.SendSuccessWithMeta(c, recs, &utils.Meta{Total: int64(len(recs))})
}
