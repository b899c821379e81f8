package features

import (
	"errors"
	"time"

	"github.com/mfgagliardi0425/Plopdiction/internal/history"
	"github.com/mfgagliardi0425/Plopdiction/internal/narrative"
	"github.com/mfgagliardi0425/Plopdiction/internal/stats"
)

// ErrInsufficientHistory is returned when either team has no completed
// games before the target date. Callers must skip the matchup rather
// than train or predict on a zero-filled row.
var ErrInsufficientHistory = errors.New("insufficient prior history for matchup")

// Builder assembles model input vectors from read-only snapshots built
// once per run. It never looks at games on or after the target date.
type Builder struct {
	store      *history.Store
	narratives narrative.History
	halfLife   float64
}

func NewBuilder(store *history.Store, narratives narrative.History, halfLife float64) *Builder {
	if halfLife <= 0 {
		halfLife = stats.DefaultHalfLife
	}
	return &Builder{store: store, narratives: narratives, halfLife: halfLife}
}

// Build produces the feature vector for a single matchup. openingSpread
// may be nil when no opening line was captured, in which case line_move
// is 0.
func (b *Builder) Build(homeID, awayID string, gameDate time.Time, marketSpread float64, openingSpread *float64) (*Vector, error) {
	homeGames := b.store.GamesBefore(homeID, gameDate)
	awayGames := b.store.GamesBefore(awayID, gameDate)
	if len(homeGames) == 0 || len(awayGames) == 0 {
		return nil, ErrInsufficientHistory
	}

	homeStats := stats.Compute(homeID, b.store.Name(homeID), homeGames, b.halfLife)
	awayStats := stats.Compute(awayID, b.store.Name(awayID), awayGames, b.halfLife)

	restDiff, homeB2B, awayB2B := stats.RestProfile(gameDate, homeStats.LastGameDate, awayStats.LastGameDate)

	h2hMargin, h2hWinPct, h2hCount := stats.HeadToHead(homeGames, awayID)

	homeNarr := b.narratives.Before(homeID, gameDate)
	awayNarr := b.narratives.Before(awayID, gameDate)

	lineMove := 0.0
	if openingSpread != nil {
		lineMove = marketSpread - *openingSpread
	}

	v := &Vector{
		HomeWeightedMargin:        homeStats.WeightedHomeMargin,
		AwayWeightedMargin:        awayStats.WeightedAwayMargin,
		HomeWeightedWinPct:        homeStats.WeightedWinPct,
		AwayWeightedWinPct:        awayStats.WeightedWinPct,
		HomeRecent10WinPct:        homeStats.Recent10WinPct,
		AwayRecent10WinPct:        awayStats.Recent10WinPct,
		HomeWeightedPointsFor:     homeStats.WeightedPointsFor,
		AwayWeightedPointsFor:     awayStats.WeightedPointsFor,
		HomeWeightedPointsAgainst: homeStats.WeightedPointsAgainst,
		AwayWeightedPointsAgainst: awayStats.WeightedPointsAgainst,
		HomeWeightedPointDiff:     homeStats.WeightedPointsFor - homeStats.WeightedPointsAgainst,
		AwayWeightedPointDiff:     awayStats.WeightedPointsFor - awayStats.WeightedPointsAgainst,
		HomeRecentMargin3:         stats.RecentMargin(homeGames, 3),
		HomeRecentMargin5:         stats.RecentMargin(homeGames, 5),
		HomeRecentMargin10:        stats.RecentMargin(homeGames, 10),
		AwayRecentMargin3:         stats.RecentMargin(awayGames, 3),
		AwayRecentMargin5:         stats.RecentMargin(awayGames, 5),
		AwayRecentMargin10:        stats.RecentMargin(awayGames, 10),
		HomeRecentWinPct3:         stats.RecentWinPct(homeGames, 3),
		HomeRecentWinPct5:         stats.RecentWinPct(homeGames, 5),
		AwayRecentWinPct3:         stats.RecentWinPct(awayGames, 3),
		AwayRecentWinPct5:         stats.RecentWinPct(awayGames, 5),
		HomeRecentPointsFor5:      stats.RecentPointsFor(homeGames, 5),
		HomeRecentPointsAgainst5:  stats.RecentPointsAgainst(homeGames, 5),
		AwayRecentPointsFor5:      stats.RecentPointsFor(awayGames, 5),
		AwayRecentPointsAgainst5:  stats.RecentPointsAgainst(awayGames, 5),
		HomeBlownRate10:           narrative.BlownLeadRate(homeNarr, 10),
		AwayBlownRate10:           narrative.BlownLeadRate(awayNarr, 10),
		HomeClutchMargin10:        narrative.AvgClutchMargin(homeNarr, 10),
		AwayClutchMargin10:        narrative.AvgClutchMargin(awayNarr, 10),
		HomeMaxLead10:             narrative.AvgMaxLead(homeNarr, 10),
		AwayMaxLead10:             narrative.AvgMaxLead(awayNarr, 10),
		HomeH2HMarginAvg:          h2hMargin,
		HomeH2HWinPct:             h2hWinPct,
		H2HGamesPlayed:            float64(h2hCount),
		RestDiff:                  restDiff,
		HomeB2B:                   homeB2B,
		AwayB2B:                   awayB2B,
		HomeGamesPlayed:           float64(len(homeGames)),
		AwayGamesPlayed:           float64(len(awayGames)),
		MarketSpread:              marketSpread,
		LineMove:                  lineMove,
	}
	return v, nil
}
