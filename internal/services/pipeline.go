package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"

	"github.com/mfgagliardi0425/Plopdiction/internal/ats"
	"github.com/mfgagliardi0425/Plopdiction/internal/features"
	"github.com/mfgagliardi0425/Plopdiction/internal/history"
	"github.com/mfgagliardi0425/Plopdiction/internal/injury"
	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/internal/narrative"
	"github.com/mfgagliardi0425/Plopdiction/internal/predictor"
	"github.com/mfgagliardi0425/Plopdiction/pkg/config"
	"github.com/mfgagliardi0425/Plopdiction/pkg/database"
	"github.com/mfgagliardi0425/Plopdiction/pkg/logger"
)

// GamesSource is the slice of the games client the pipeline uses.
type GamesSource interface {
	DailySchedule(ctx context.Context, day time.Time) ([]models.Game, error)
	PlayByPlay(ctx context.Context, gameID string) (*models.Game, error)
}

// SpreadLine is a matchup's market line in away-team terms. Opening is
// nil when only the closing number was captured.
type SpreadLine struct {
	Market  float64  `json:"market"`
	Opening *float64 `json:"opening,omitempty"`
}

// PipelineService runs the daily batch: collect games, extract
// narratives, build features, save predictions, and grade finished
// slates. Each run builds its own read-only snapshots, so runs never
// share mutable state.
type PipelineService struct {
	db        *database.DB
	cache     *CacheService
	source    GamesSource
	snapshots *SnapshotService
	cfg       *config.Config
	log       *logrus.Entry
	baseline  *predictor.Baseline
}

func NewPipelineService(db *database.DB, cache *CacheService, source GamesSource, snapshots *SnapshotService, cfg *config.Config) *PipelineService {
	base := predictor.NewBaseline()
	base.HomeAdvantage = cfg.HomeAdvantage
	base.MomentumWeight = cfg.MomentumWeight
	base.RegressionFactor = cfg.RegressionFactor

	return &PipelineService{
		db:        db,
		cache:     cache,
		source:    source,
		snapshots: snapshots,
		cfg:       cfg,
		log:       logger.WithService("pipeline"),
		baseline:  base,
	}
}

// CollectGames pulls every game from start through end inclusive,
// swapping in play-by-play detail for finished games so narratives can
// be extracted. Daily schedules are cached to spare the API quota.
func (p *PipelineService) CollectGames(ctx context.Context, start, end time.Time) ([]models.Game, error) {
	var collected []models.Game
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format("2006-01-02")

		var games []models.Game
		cacheKey := ScheduleCacheKey(dateStr)
		if err := p.cache.Get(ctx, cacheKey, &games); err != nil {
			if !errors.Is(err, ErrCacheMiss) {
				p.log.WithError(err).Warn("Schedule cache read failed, fetching from source")
			}
			fetched, err := p.source.DailySchedule(ctx, day)
			if err != nil {
				return nil, err
			}
			games = fetched
			if err := p.cache.Set(ctx, cacheKey, games, p.cfg.NarrativeCacheTTL); err != nil {
				p.log.WithError(err).Warn("Failed to cache schedule")
			}
		}

		for _, g := range games {
			if !g.IsFinal() || g.ID == "" {
				collected = append(collected, g)
				continue
			}
			full, err := p.source.PlayByPlay(ctx, g.ID)
			if err != nil {
				p.log.WithError(err).WithField("game_id", g.ID).Warn("Play-by-play fetch failed, keeping schedule record")
				collected = append(collected, g)
				continue
			}
			collected = append(collected, *full)
		}
	}
	return collected, nil
}

// SyncNarratives extracts a narrative from every finished game and
// persists it, keyed by matchup. Games that cannot be extracted, such
// as finals with no play-by-play, are skipped and counted.
func (p *PipelineService) SyncNarratives(ctx context.Context, games []models.Game) (saved, skipped int, err error) {
	for _, g := range games {
		n, exErr := narrative.Extract(g)
		if exErr != nil {
			skipped++
			continue
		}

		rec := models.NarrativeRecord{
			MatchupKey:       n.Game,
			GameDate:         n.GameDate,
			HomeTeam:         n.HomeTeam,
			AwayTeam:         n.AwayTeam,
			HomePoints:       n.HomePoints,
			AwayPoints:       n.AwayPoints,
			MaxHomeLead:      n.MaxHomeLead,
			MaxAwayLead:      n.MaxAwayLead,
			BlownLeadTeam:    n.BlownLeadTeam,
			BlownLeadSide:    n.BlownLeadSide,
			ClutchHomePoints: n.ClutchHomePoints,
			ClutchAwayPoints: n.ClutchAwayPoints,
			ClutchMargin:     n.ClutchMargin,
		}

		result := p.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "matchup_key"}},
			UpdateAll: true,
		}).Create(&rec)
		if result.Error != nil {
			return saved, skipped, fmt.Errorf("saving narrative %q: %w", n.Game, result.Error)
		}
		saved++

		cacheKey := NarrativeCacheKey(n.AwayTeam, n.HomeTeam)
		if cErr := p.cache.Set(ctx, cacheKey, n, p.cfg.NarrativeCacheTTL); cErr != nil {
			p.log.WithError(cErr).Warn("Failed to cache narrative")
		}
	}

	p.log.WithFields(logrus.Fields{
		"saved":   saved,
		"skipped": skipped,
	}).Info("Narrative sync complete")
	return saved, skipped, nil
}

// PredictSlate builds features for each game on the slate and stores a
// prediction, both raw and injury-adjusted. historyGames must contain
// every completed game available before the slate date; the builder
// filters to strictly earlier dates itself. Matchups where either team
// has no prior history are skipped rather than zero-filled.
func (p *PipelineService) PredictSlate(
	ctx context.Context,
	slateDate time.Time,
	historyGames []models.Game,
	slate []models.Game,
	spreads map[string]SpreadLine,
	injuries *injury.Snapshot,
) ([]models.PredictionRecord, error) {
	store := history.Build(historyGames)
	narratives := narrative.BuildHistory(historyGames)
	builder := features.NewBuilder(store, narratives, p.cfg.HalfLifeGames)

	var saved []models.PredictionRecord
	for _, g := range slate {
		homeID, homeName := g.Home.Display()
		awayID, awayName := g.Away.Display()
		if homeID == "" || awayID == "" {
			continue
		}
		key := narrative.MatchupKey(awayName, homeName)

		line := spreads[key]
		vec, err := builder.Build(homeID, awayID, slateDate, line.Market, line.Opening)
		if err != nil {
			if errors.Is(err, features.ErrInsufficientHistory) {
				logger.WithMatchup(homeID, awayID).Info("Skipping matchup with insufficient history")
				continue
			}
			return saved, err
		}

		if cErr := p.cache.Set(ctx, FeatureCacheKey(homeID, awayID, slateDate.Format("2006-01-02")), vec, p.cfg.NarrativeCacheTTL); cErr != nil {
			p.log.WithError(cErr).Warn("Failed to cache feature vector")
		}

		predAway := p.baseline.PredictAwayMargin(vec)
		predAwayAdj := injuries.AdjustAwayMargin(awayName, homeName, predAway)

		rec := models.PredictionRecord{
			GameID:            g.ID,
			GameDate:          slateDate,
			MatchupKey:        key,
			HomeID:            homeID,
			AwayID:            awayID,
			HomeTeam:          homeName,
			AwayTeam:          awayName,
			PredAwayMargin:    predAway,
			PredAwayMarginAdj: predAwayAdj,
			MarketSpread:      line.Market,
			OpeningSpread:     line.Opening,
		}
		if result := p.db.WithContext(ctx).Create(&rec); result.Error != nil {
			return saved, fmt.Errorf("saving prediction %q: %w", key, result.Error)
		}
		saved = append(saved, rec)
	}

	p.log.WithFields(logrus.Fields{
		"date":        slateDate.Format("2006-01-02"),
		"predictions": len(saved),
		"slate":       len(slate),
	}).Info("Slate predictions saved")
	return saved, nil
}

// EvaluateDate grades every stored prediction for a date against the
// finished games and persists the run. Predictions without a matching
// result or without a recorded line are left ungraded.
func (p *PipelineService) EvaluateDate(ctx context.Context, date time.Time, finals []models.Game) (*models.EvaluationRun, error) {
	var preds []models.PredictionRecord
	if result := p.db.WithContext(ctx).Where("game_date = ?", date).Find(&preds); result.Error != nil {
		return nil, fmt.Errorf("loading predictions for %s: %w", date.Format("2006-01-02"), result.Error)
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("no predictions stored for %s", date.Format("2006-01-02"))
	}

	idx := BuildResultIndex(finals)
	if idx.Len() == 0 {
		return nil, fmt.Errorf("no final results available for %s", date.Format("2006-01-02"))
	}

	log := logger.WithEvaluationRun("", date.Format("2006-01-02"))

	var rows []ats.Metrics
	var graded []models.GradedGameRecord
	for _, pred := range preds {
		result, ok := idx.Lookup(pred.AwayID, pred.HomeID, pred.MatchupKey, pred.AwayTeam, pred.HomeTeam)
		if !ok {
			log.WithField("game", pred.MatchupKey).Warn("No result found for prediction")
			continue
		}
		if pred.MarketSpread == 0 {
			log.WithError(ats.ErrNoLine).WithField("game", pred.MatchupKey).Debug("Prediction left ungraded")
			continue
		}

		m := ats.Compute(result.AwayMargin, pred.PredAwayMarginAdj, pred.MarketSpread)
		rows = append(rows, m)
		graded = append(graded, models.GradedGameRecord{
			MatchupKey:   pred.MatchupKey,
			LineAway:     m.Line,
			PredLineAway: -m.PredAwayMargin,
			ActualAway:   -m.AwayMargin,
			ActualDiff:   m.ActualDiff,
			PredDiff:     m.PredDiff,
			Result:       string(m.Result),
			Edge:         m.Edge,
			EdgePick:     string(m.EdgePick),
			EdgeHit:      m.EdgeHit,
			ModelError:   m.ModelError,
			MarketError:  m.MarketError,
		})
	}

	summary := ats.Summarize(rows)
	run := &models.EvaluationRun{
		GameDate:          date,
		TotalGames:        summary.TotalGames,
		GradedGames:       summary.GradedGames,
		Wins:              summary.Wins,
		Losses:            summary.Losses,
		Pushes:            summary.Pushes,
		ATSAccuracy:       summary.ATSAccuracy,
		EdgeOpportunities: summary.EdgeOpportunities,
		EdgeBets:          summary.EdgeBets,
		EdgeWins:          summary.EdgeWins,
		EdgeHitRate:       summary.EdgeHitRate,
		ModelMAE:          summary.ModelMAE,
		MarketMAE:         summary.MarketMAE,
		Thresholds:        pq.Float64Array(p.cfg.EdgeThresholds),
		Games:             graded,
	}
	if result := p.db.WithContext(ctx).Create(run); result.Error != nil {
		return nil, fmt.Errorf("saving evaluation run: %w", result.Error)
	}

	log.WithFields(logrus.Fields{
		"graded": summary.GradedGames,
		"wins":   summary.Wins,
		"losses": summary.Losses,
		"pushes": summary.Pushes,
	}).Info("Evaluation run saved")
	return run, nil
}

// SweepThresholds replays a run's graded games across the configured
// minimum-edge grid.
func (p *PipelineService) SweepThresholds(ctx context.Context, runID string) ([]ats.ThresholdResult, error) {
	var records []models.GradedGameRecord
	if result := p.db.WithContext(ctx).Where("run_id = ?", runID).Find(&records); result.Error != nil {
		return nil, fmt.Errorf("loading graded games for run %s: %w", runID, result.Error)
	}

	games := make([]ats.GradedGame, 0, len(records))
	for _, r := range records {
		games = append(games, ats.GradedGame{
			AwayMargin:     -r.ActualAway,
			PredAwayMargin: -r.PredLineAway,
			Line:           r.LineAway,
		})
	}
	return ats.EvaluateThresholds(games, p.cfg.EdgeThresholds), nil
}

// SaveInjuryReport archives the per-team penalties from a snapshot so
// graded runs can be audited later.
func (p *PipelineService) SaveInjuryReport(ctx context.Context, snap *injury.Snapshot) error {
	for team, entries := range snap.Teams {
		var out []string
		for _, e := range entries {
			if e.Penalty() > 0 {
				out = append(out, e.Player)
			}
		}
		rec := models.InjuryReportRecord{
			ReportDate: snap.Date,
			Team:       team,
			PlayersOut: out,
			Penalty:    snap.TeamPenalty(team),
			FetchedAt:  snap.FetchedAt,
		}
		if result := p.db.WithContext(ctx).Create(&rec); result.Error != nil {
			return fmt.Errorf("saving injury report for %s: %w", team, result.Error)
		}
	}

	if err := p.cache.Set(ctx, InjuryCacheKey(snap.Date.Format("2006-01-02")), snap, p.cfg.NarrativeCacheTTL); err != nil {
		p.log.WithError(err).Warn("Failed to cache injury snapshot")
	}
	return nil
}

// RefreshSnapshots rebuilds the shared history and narrative snapshots
// from every game between start and end.
func (p *PipelineService) RefreshSnapshots(ctx context.Context, start, end time.Time) error {
	games, err := p.CollectGames(ctx, start, end)
	if err != nil {
		return fmt.Errorf("collecting games for snapshot: %w", err)
	}
	p.snapshots.Update(games)
	p.log.WithField("games", len(games)).Info("Snapshots refreshed")
	return nil
}

// RunDaily is the cron entry point: refresh yesterday's games, sync
// narratives, grade yesterday's predictions if any were stored, and
// rebuild the season snapshots.
func (p *PipelineService) RunDaily(ctx context.Context) error {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	games, err := p.CollectGames(ctx, day, day)
	if err != nil {
		return fmt.Errorf("collecting games for %s: %w", day.Format("2006-01-02"), err)
	}

	if _, _, err := p.SyncNarratives(ctx, games); err != nil {
		return err
	}

	if _, err := p.EvaluateDate(ctx, day, games); err != nil {
		p.log.WithError(err).Warn("Daily evaluation skipped")
	}

	if err := p.RefreshSnapshots(ctx, p.cfg.SeasonStart, day); err != nil {
		p.log.WithError(err).Warn("Snapshot refresh failed")
	}
	return nil
}
