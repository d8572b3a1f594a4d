package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/omicsops/samplectl/internal/validator"
)

// NewRunInfo builds a run record from a validation result. data is the raw
// sheet content used for the checksum.
func NewRunInfo(sheetPath string, data []byte, samples int, result *validator.ValidationResult) *RunInfo {
	sum := sha256.Sum256(data)

	run := &RunInfo{
		ID:           uuid.NewString(),
		SheetPath:    sheetPath,
		Checksum:     hex.EncodeToString(sum[:]),
		Time:         time.Now().UTC(),
		Valid:        result.Valid,
		Samples:      samples,
		ErrorCount:   len(result.Errors),
		WarningCount: len(result.Warnings),
	}

	for _, e := range result.Errors {
		run.Findings = append(run.Findings, fmt.Sprintf("error: %s", e.Message))
	}
	for _, w := range result.Warnings {
		run.Findings = append(run.Findings, fmt.Sprintf("warning: %s", w.Message))
	}

	return run
}
