package services

import (
	"sync"
	"time"

	"github.com/mfgagliardi0425/Plopdiction/internal/features"
	"github.com/mfgagliardi0425/Plopdiction/internal/history"
	"github.com/mfgagliardi0425/Plopdiction/internal/models"
	"github.com/mfgagliardi0425/Plopdiction/internal/narrative"
)

// SnapshotService holds the current read-only history and narrative
// snapshots. Batch runs and request handlers read whatever snapshot is
// installed; only Update replaces it, wholesale, so readers never see
// a half-built index.
type SnapshotService struct {
	mu         sync.RWMutex
	store      *history.Store
	narratives narrative.History
	builtAt    time.Time
}

func NewSnapshotService() *SnapshotService {
	return &SnapshotService{}
}

// Update rebuilds both snapshots from a fresh set of raw games.
func (s *SnapshotService) Update(games []models.Game) {
	store := history.Build(games)
	narratives := narrative.BuildHistory(games)

	s.mu.Lock()
	s.store = store
	s.narratives = narratives
	s.builtAt = time.Now().UTC()
	s.mu.Unlock()
}

// Builder returns a feature builder over the current snapshot and the
// time the snapshot was built. ok is false until the first Update.
func (s *SnapshotService) Builder(halfLife float64) (b *features.Builder, builtAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, time.Time{}, false
	}
	return features.NewBuilder(s.store, s.narratives, halfLife), s.builtAt, true
}

// BuiltAt reports when the current snapshot was installed.
func (s *SnapshotService) BuiltAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builtAt, !s.builtAt.IsZero()
}
