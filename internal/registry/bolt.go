package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/omicsops/samplectl/internal/utils/logger"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	// DefaultBoltFilePath is the default path for the BoltDB file
	DefaultBoltFilePath = "samplectl-runs.db"

	// DefaultBoltFileMode is the default file mode for the BoltDB file
	DefaultBoltFileMode = 0600

	// DefaultBoltTimeout is the default timeout for BoltDB operations
	DefaultBoltTimeout = 1 * time.Second
)

// runBucket is the bucket where run records are stored
var runBucket = []byte("runs")

// BoltStorage implements the RunStorage interface using BoltDB
type BoltStorage struct {
	db      *bolt.DB
	path    string
	options *BoltOptions
}

// BoltOptions configures the BoltDB storage
type BoltOptions struct {
	// Path to the BoltDB file
	Path string
	// File mode for the BoltDB file
	FileMode os.FileMode
	// Timeout for BoltDB operations
	Timeout time.Duration
}

// NewBoltStorage creates a new BoltStorage with the given options
func NewBoltStorage(opts *BoltOptions) *BoltStorage {
	if opts == nil {
		opts = &BoltOptions{}
	}

	if opts.Path == "" {
		opts.Path = DefaultBoltFilePath
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultBoltFileMode
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultBoltTimeout
	}

	return &BoltStorage{
		path:    opts.Path,
		options: opts,
	}
}

// Open initializes the BoltDB database
func (s *BoltStorage) Open() error {
	logger.Debug("Opening run registry", zap.String("path", s.path))

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for registry: %w", err)
	}

	db, err := bolt.Open(s.path, s.options.FileMode, &bolt.Options{Timeout: s.options.Timeout})
	if err != nil {
		return fmt.Errorf("failed to open run registry: %w", err)
	}
	s.db = db

	err = s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runBucket)
		if err != nil {
			return fmt.Errorf("failed to create runs bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		s.db.Close()
		return fmt.Errorf("failed to initialize registry: %w", err)
	}

	return nil
}

// Close closes the BoltDB database
func (s *BoltStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun stores a new run record
func (s *BoltStorage) CreateRun(ctx context.Context, run *RunInfo) error {
	logger.Debug("Recording validation run", zap.String("id", run.ID), zap.String("sheet", run.SheetPath))
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runBucket)
		if b == nil {
			return fmt.Errorf("runs bucket not found")
		}

		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}

		if err := b.Put([]byte(run.ID), data); err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}
		return nil
	})
}

// GetRun retrieves a run by its ID
func (s *BoltStorage) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	var run *RunInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(runBucket)
		if b == nil {
			return fmt.Errorf("runs bucket not found")
		}

		data := b.Get([]byte(runID))
		if data == nil {
			return ErrRunNotFound{RunID: runID}
		}

		var r RunInfo
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to unmarshal run: %w", err)
		}
		run = &r
		return nil
	})
	return run, err
}

// ListRuns retrieves runs matching the filter, newest first
func (s *BoltStorage) ListRuns(ctx context.Context, filter ListFilter) ([]*RunInfo, error) {
	var runs []*RunInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(runBucket)
		if b == nil {
			return fmt.Errorf("runs bucket not found")
		}

		return b.ForEach(func(k, v []byte) error {
			var r RunInfo
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal run: %w", err)
			}
			if filter.SheetPath != "" && r.SheetPath != filter.SheetPath {
				return nil
			}
			if filter.OnlyInvalid && r.Valid {
				return nil
			}
			runs = append(runs, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
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
func (s *BoltStorage) DeleteRun(ctx context.Context, runID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runBucket)
		if b == nil {
			return fmt.Errorf("runs bucket not found")
		}

		if b.Get([]byte(runID)) == nil {
			return ErrRunNotFound{RunID: runID}
		}

		if err := b.Delete([]byte(runID)); err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		return nil
	})
}

// PruneBefore removes all runs older than the cutoff
func (s *BoltStorage) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	pruned := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runBucket)
		if b == nil {
			return fmt.Errorf("runs bucket not found")
		}

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var r RunInfo
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal run: %w", err)
			}
			if r.Time.Before(cutoff) {
				key := make([]byte, len(k))
				copy(key, k)
				stale = append(stale, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range stale {
			if err := b.Delete(key); err != nil {
				return fmt.Errorf("failed to delete run: %w", err)
			}
		}
		pruned = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Debug("Pruned validation runs", zap.Int("count", pruned), zap.Time("cutoff", cutoff))
	return pruned, nil
}
