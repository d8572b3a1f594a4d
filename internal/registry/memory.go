package registry

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of RunStorage for testing
type MemoryStorage struct {
	mu   sync.RWMutex
	runs map[string]*RunInfo
}

// NewMemoryStorage creates a new in-memory run storage
func NewMemoryStorage() RunStorage {
	return &MemoryStorage{
		runs: make(map[string]*RunInfo),
	}
}

// Open initializes the storage
func (s *MemoryStorage) Open() error {
	return nil
}

// Close closes the storage
func (s *MemoryStorage) Close() error {
	return nil
}

// CreateRun stores a new run record
func (s *MemoryStorage) CreateRun(ctx context.Context, run *RunInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *run
	s.runs[run.ID] = &copied
	return nil
}

// GetRun retrieves a run by its ID
func (s *MemoryStorage) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, ErrRunNotFound{RunID: runID}
	}

	copied := *run
	return &copied, nil
}

// ListRuns retrieves runs matching the filter, newest first
func (s *MemoryStorage) ListRuns(ctx context.Context, filter ListFilter) ([]*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []*RunInfo
	for _, run := range s.runs {
		if filter.SheetPath != "" && run.SheetPath != filter.SheetPath {
			continue
		}
		if filter.OnlyInvalid && run.Valid {
			continue
		}
		copied := *run
		runs = append(runs, &copied)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Time.After(runs[j].Time)
	})
	if filter.Limit > 0 && len(runs) > filter.Limit {
		runs = runs[:filter.Limit]
	}

	return runs, nil
}

// DeleteRun removes a run from the registry
func (s *MemoryStorage) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[runID]; !ok {
		return ErrRunNotFound{RunID: runID}
	}

	delete(s.runs, runID)
	return nil
}

// PruneBefore removes all runs older than the cutoff
func (s *MemoryStorage) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, run := range s.runs {
		if run.Time.Before(cutoff) {
			delete(s.runs, id)
			pruned++
		}
	}

	return pruned, nil
}
