package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testRun(sheet string, valid bool, at time.Time) *RunInfo {
	return &RunInfo{
		ID:        uuid.NewString(),
		SheetPath: sheet,
		Checksum:  "deadbeef",
		Time:      at,
		Valid:     valid,
		Samples:   2,
	}
}

// openStorages returns both implementations so every test runs against each
func openStorages(t *testing.T) map[string]RunStorage {
	t.Helper()

	boltStore := NewBoltStorage(&BoltOptions{
		Path: filepath.Join(t.TempDir(), "runs.db"),
	})
	memStore := NewMemoryStorage()

	stores := map[string]RunStorage{
		"bolt":   boltStore,
		"memory": memStore,
	}
	for name, store := range stores {
		if err := store.Open(); err != nil {
			t.Fatalf("Failed to open %s storage: %v", name, err)
		}
		t.Cleanup(func() { store.Close() })
	}
	return stores
}

func TestRunStorage_CreateGet(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStorages(t) {
		t.Run(name, func(t *testing.T) {
			run := testRun("project.yaml", true, time.Now().UTC())
			if err := store.CreateRun(ctx, run); err != nil {
				t.Fatalf("Failed to create run: %v", err)
			}

			got, err := store.GetRun(ctx, run.ID)
			if err != nil {
				t.Fatalf("Failed to get run: %v", err)
			}
			if got.SheetPath != run.SheetPath {
				t.Errorf("SheetPath = %q, want %q", got.SheetPath, run.SheetPath)
			}
			if got.Checksum != run.Checksum {
				t.Errorf("Checksum = %q, want %q", got.Checksum, run.Checksum)
			}
		})
	}
}

func TestRunStorage_GetMissing(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStorages(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetRun(ctx, "no-such-run")
			if err == nil {
				t.Fatal("Expected error for missing run")
			}
			if !IsNotFound(err) {
				t.Errorf("Expected not-found error, got: %v", err)
			}
		})
	}
}

func TestRunStorage_ListFilters(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	for name, store := range openStorages(t) {
		t.Run(name, func(t *testing.T) {
			older := testRun("a.yaml", true, now.Add(-2*time.Hour))
			newer := testRun("a.yaml", false, now.Add(-1*time.Hour))
			other := testRun("b.yaml", true, now)
			for _, run := range []*RunInfo{older, newer, other} {
				if err := store.CreateRun(ctx, run); err != nil {
					t.Fatalf("Failed to create run: %v", err)
				}
			}

			runs, err := store.ListRuns(ctx, ListFilter{})
			if err != nil {
				t.Fatalf("Failed to list runs: %v", err)
			}
			if len(runs) != 3 {
				t.Fatalf("Listed %d runs, want 3", len(runs))
			}
			if runs[0].ID != other.ID {
				t.Errorf("Runs not newest first: got %s", runs[0].ID)
			}

			runs, err = store.ListRuns(ctx, ListFilter{SheetPath: "a.yaml"})
			if err != nil {
				t.Fatalf("Failed to list runs by sheet: %v", err)
			}
			if len(runs) != 2 {
				t.Errorf("Listed %d runs for a.yaml, want 2", len(runs))
			}

			runs, err = store.ListRuns(ctx, ListFilter{OnlyInvalid: true})
			if err != nil {
				t.Fatalf("Failed to list failed runs: %v", err)
			}
			if len(runs) != 1 || runs[0].ID != newer.ID {
				t.Errorf("Failed-run filter returned wrong runs: %+v", runs)
			}

			runs, err = store.ListRuns(ctx, ListFilter{Limit: 1})
			if err != nil {
				t.Fatalf("Failed to list limited runs: %v", err)
			}
			if len(runs) != 1 {
				t.Errorf("Limit 1 returned %d runs", len(runs))
			}
		})
	}
}

func TestRunStorage_Delete(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStorages(t) {
		t.Run(name, func(t *testing.T) {
			run := testRun("project.yaml", true, time.Now().UTC())
			if err := store.CreateRun(ctx, run); err != nil {
				t.Fatalf("Failed to create run: %v", err)
			}

			if err := store.DeleteRun(ctx, run.ID); err != nil {
				t.Fatalf("Failed to delete run: %v", err)
			}
			if _, err := store.GetRun(ctx, run.ID); !IsNotFound(err) {
				t.Errorf("Expected not-found after delete, got: %v", err)
			}
			if err := store.DeleteRun(ctx, run.ID); !IsNotFound(err) {
				t.Errorf("Expected not-found on double delete, got: %v", err)
			}
		})
	}
}

func TestRunStorage_PruneBefore(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	for name, store := range openStorages(t) {
		t.Run(name, func(t *testing.T) {
			stale := testRun("a.yaml", true, now.Add(-48*time.Hour))
			fresh := testRun("a.yaml", true, now)
			for _, run := range []*RunInfo{stale, fresh} {
				if err := store.CreateRun(ctx, run); err != nil {
					t.Fatalf("Failed to create run: %v", err)
				}
			}

			pruned, err := store.PruneBefore(ctx, now.Add(-24*time.Hour))
			if err != nil {
				t.Fatalf("Failed to prune runs: %v", err)
			}
			if pruned != 1 {
				t.Errorf("Pruned %d runs, want 1", pruned)
			}

			if _, err := store.GetRun(ctx, stale.ID); !IsNotFound(err) {
				t.Errorf("Stale run should be gone, got: %v", err)
			}
			if _, err := store.GetRun(ctx, fresh.ID); err != nil {
				t.Errorf("Fresh run should survive prune: %v", err)
			}
		})
	}
}
