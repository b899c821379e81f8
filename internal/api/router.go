package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mfgagliardi0425/Plopdiction/internal/api/handlers"
	"github.com/mfgagliardi0425/Plopdiction/internal/services"
	"github.com/mfgagliardi0425/Plopdiction/pkg/config"
	"github.com/mfgagliardi0425/Plopdiction/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(
	group *gin.RouterGroup,
	db *database.DB,
	redisClient *redis.Client,
	cache *services.CacheService,
	snapshots *services.SnapshotService,
	pipeline *services.PipelineService,
	cfg *config.Config,
) {
	healthHandler := handlers.NewHealthHandler(db, redisClient, snapshots)
	featureHandler := handlers.NewFeatureHandler(snapshots, cfg)
	narrativeHandler := handlers.NewNarrativeHandler(db, cache)
	evaluationHandler := handlers.NewEvaluationHandler(db, pipeline)
	predictionHandler := handlers.NewPredictionHandler(pipeline, cfg)

	group.GET("/health", healthHandler.GetHealth)
	group.GET("/ready", healthHandler.GetReady)

	group.GET("/features", featureHandler.GetFeatures)
	group.GET("/features/schema", featureHandler.GetSchema)

	group.GET("/narratives", narrativeHandler.GetNarrative)
	group.GET("/narratives/:date", narrativeHandler.ListNarratives)

	group.GET("/predictions/:date", evaluationHandler.ListPredictions)
	group.POST("/predictions/:date", predictionHandler.CreatePredictions)
	group.POST("/evaluations/:date", evaluationHandler.RunEvaluation)
	group.GET("/evaluations/:date", evaluationHandler.GetEvaluation)
	group.GET("/threshold-sweeps/:id", evaluationHandler.GetThresholdSweep)
}
