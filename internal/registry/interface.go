package registry

import (
	"context"
	"time"
)

// RunInfo records one validation run of a sample sheet
type RunInfo struct {
	// ID is a generated unique identifier for the run
	ID string `json:"id"`
	// SheetPath is the path of the validated sheet
	SheetPath string `json:"sheet_path"`
	// Checksum is the sha256 of the sheet contents at validation time
	Checksum string `json:"checksum"`
	// Time is when the validation ran
	Time time.Time `json:"time"`
	// Valid reports whether the sheet passed
	Valid bool `json:"valid"`
	// Samples is the number of records in the sheet
	Samples int `json:"samples"`
	// ErrorCount and WarningCount summarize the findings
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	// Findings holds the finding messages for `runs show`
	Findings []string `json:"findings,omitempty"`
}

// ListFilter narrows ListRuns results. Zero values match everything.
type ListFilter struct {
	// SheetPath limits results to runs of one sheet
	SheetPath string
	// OnlyInvalid limits results to failed runs
	OnlyInvalid bool
	// Limit caps the number of results; 0 means no cap
	Limit int
}

// RunStorage defines the interface for persistent storage of validation runs
type RunStorage interface {
	// Open initializes the storage and makes it ready for use
	Open() error

	// Close closes the storage and releases any resources
	Close() error

	// CreateRun stores a new run record
	CreateRun(ctx context.Context, run *RunInfo) error

	// GetRun retrieves a run by its ID
	GetRun(ctx context.Context, runID string) (*RunInfo, error)

	// ListRuns retrieves runs matching the filter, newest first
	ListRuns(ctx context.Context, filter ListFilter) ([]*RunInfo, error)

	// DeleteRun removes a run from the registry
	DeleteRun(ctx context.Context, runID string) error

	// PruneBefore removes all runs older than the cutoff and returns how
	// many were deleted
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// ErrRunNotFound is returned when a run with the specified ID is not found
type ErrRunNotFound struct {
	RunID string
}

// Error implements the error interface
func (e ErrRunNotFound) Error() string {
	return "run not found: " + e.RunID
}

// IsNotFound returns true if the error is ErrRunNotFound
func IsNotFound(err error) bool {
	_, ok := err.(ErrRunNotFound)
	return ok
}
