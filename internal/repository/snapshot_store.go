package repository

import (
	"sync"

	"github.com/yongkyu4803/2510-MCdata/internal/domain/models"
)

// MemorySnapshotStore holds the latest snapshot behind a read lock. The API
// serves reads far more often than the collector writes.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	snap *models.Snapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Replace swaps in a new snapshot atomically.
func (s *MemorySnapshotStore) Replace(snap *models.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Latest returns the current snapshot, or false before the first collection.
func (s *MemorySnapshotStore) Latest() (*models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, false
	}
	return s.snap, true
}
