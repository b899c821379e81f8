package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mfgagliardi0425/Plopdiction/internal/api"
	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/internal/provider"
	"github.com/mfgagliardi0425/Plopdiction/internal/services"
	"github.com/mfgagliardi0425/Plopdiction/pkg/config"
	"github.com/mfgagliardi0425/Plopdiction/pkg/database"
	"github.com/mfgagliardi0425/Plopdiction/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("spread-model").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting spread model service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.WithService("spread-model").Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.NarrativeRecord{},
		&models.PredictionRecord{},
		&models.EvaluationRun{},
		&models.GradedGameRecord{},
		&models.InjuryReportRecord{},
	); err != nil {
		logger.WithService("spread-model").Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("spread-model").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithService("spread-model").Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	circuitBreakerService := services.NewCircuitBreakerService(
		cfg.CircuitBreakerThreshold,
		cfg.ExternalAPITimeout,
		structuredLogger,
	)
	gamesClient := provider.NewGamesClient(cfg, circuitBreakerService, structuredLogger)
	snapshotService := services.NewSnapshotService()
	pipelineService := services.NewPipelineService(db, cacheService, gamesClient, snapshotService, cfg)

	// Build the initial snapshots in the background so the server can
	// start answering health checks immediately.
	go func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		if err := pipelineService.RefreshSnapshots(ctx, cfg.SeasonStart, yesterday); err != nil {
			logger.WithService("spread-model").WithError(err).Error("Initial snapshot build failed")
		}
	}()

	// Schedule the daily pipeline if enabled
	if cfg.EnablePipeline {
		scheduler := services.NewSchedulerService(pipelineService, cfg.PipelineSchedule, structuredLogger)
		if err := scheduler.Start(); err != nil {
			logger.WithService("spread-model").Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, db, redisClient, cacheService, snapshotService, pipelineService, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("spread-model").WithField("port", cfg.Port).Info("Spread model service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("spread-model").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("spread-model").Info("Shutting down spread model service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithService("spread-model").Fatalf("Spread model service forced to shutdown: %v", err)
	}

	logger.WithService("spread-model").Info("Spread model service exited")
}
