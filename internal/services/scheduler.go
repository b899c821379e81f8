package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SchedulerService runs the daily pipeline on a cron schedule.
type SchedulerService struct {
	pipeline  *PipelineService
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	isRunning bool
}

func NewSchedulerService(pipeline *PipelineService, schedule string, logger *logrus.Logger) *SchedulerService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerService{
		pipeline: pipeline,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		log := s.logger.WithField("component", "scheduler")
		log.Info("Daily pipeline run starting")
		if err := s.pipeline.RunDaily(s.ctx); err != nil {
			log.WithError(err).Error("Daily pipeline run failed")
			return
		}
		log.Info("Daily pipeline run finished")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule daily pipeline: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithFields(logrus.Fields{
		"component": "scheduler",
		"schedule":  s.schedule,
	}).Info("Scheduler started")
	return nil
}

func (s *SchedulerService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.cancel()
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		s.logger.WithField("component", "scheduler").Info("Scheduler stopped gracefully")
	case <-time.After(5 * time.Second):
		s.logger.WithField("component", "scheduler").Warn("Scheduler stop timed out with jobs still running")
	}
	s.isRunning = false
	return nil
}
