package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/omicsops/samplectl/internal/model"
)

// ValidationResult represents the result of sample sheet validation
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
	Hints    []string            `json:"hints,omitempty"`
	sheet    *model.SampleSheet
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// ValidationWarning represents a validation warning
type ValidationWarning struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Validator validates sample sheets
type Validator struct {
	sheet *model.SampleSheet
	// BaseDir anchors relative file paths for existence checks. Empty
	// disables the checks (e.g. when validating a sheet sent over HTTP).
	BaseDir string
	// Strict promotes warnings to errors
	Strict bool
}

// NewValidator creates a new validator for the given sheet
func NewValidator(sheet *model.SampleSheet) *Validator {
	return &Validator{sheet: sheet}
}

// Validate performs all validation checks
func (v *Validator) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
		Hints:    []string{},
		sheet:    v.sheet,
	}

	v.validateDuplicateDescriptions(result)
	for i := range v.sheet.Details {
		sample := &v.sheet.Details[i]
		v.validateAnalysis(sample, result)
		v.validateGenomeBuild(sample, result)
		v.validateFiles(sample, result)
		v.validateAlgorithm(sample, result)
		v.validateAuxiliaryFiles(sample, result)
	}
	v.validateChipPairing(result)
	v.validateBatches(result)

	if v.Strict {
		for _, w := range result.Warnings {
			result.Errors = append(result.Errors, ValidationError{
				Field:   w.Field,
				Message: w.Message,
				Fix:     w.Hint,
			})
		}
		result.Warnings = result.Warnings[:0]
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// validateDuplicateDescriptions checks that record names are unique
func (v *Validator) validateDuplicateDescriptions(result *ValidationResult) {
	seen := make(map[string]bool)
	for _, sample := range v.sheet.Details {
		if seen[sample.Description] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "description",
				Message: fmt.Sprintf("Duplicate sample description '%s'", sample.Description),
				Fix:     "Use a unique description for each sample record",
			})
		}
		seen[sample.Description] = true
	}
}

// validateAnalysis checks the pipeline type label
func (v *Validator) validateAnalysis(sample *model.Sample, result *ValidationResult) {
	if sample.Analysis == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   v.field(sample, "analysis"),
			Message: fmt.Sprintf("Sample '%s' has no analysis set", sample.Description),
			Fix:     "Set analysis to the pipeline type, e.g. RNA-seq",
		})
		return
	}

	if !model.KnownAnalysis(sample.Analysis) {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   v.field(sample, "analysis"),
			Message: fmt.Sprintf("Unknown analysis '%s'", sample.Analysis),
			Hint:    fmt.Sprintf("Known analyses: %s", strings.Join(model.Analyses, ", ")),
		})
	}
}

// validateGenomeBuild checks the reference assembly identifier
func (v *Validator) validateGenomeBuild(sample *model.Sample, result *ValidationResult) {
	if sample.GenomeBuild == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   v.field(sample, "genome_build"),
			Message: fmt.Sprintf("Sample '%s' has no genome_build set", sample.Description),
			Fix:     "Set genome_build to a reference assembly, e.g. hg38",
		})
		return
	}

	if !model.KnownGenomeBuild(sample.GenomeBuild) {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   v.field(sample, "genome_build"),
			Message: fmt.Sprintf("No prebuilt indices for genome build '%s'", sample.GenomeBuild),
			Hint:    "The pipeline will need a custom genome directory for this build",
		})
	}
}

// validateFiles checks the input read files
func (v *Validator) validateFiles(sample *model.Sample, result *ValidationResult) {
	switch len(sample.Files) {
	case 0:
		result.Errors = append(result.Errors, ValidationError{
			Field:   v.field(sample, "files"),
			Message: fmt.Sprintf("Sample '%s' has no input files", sample.Description),
			Fix:     "List one file for single-end or two files for paired-end reads",
		})
		return
	case 1:
		// single-end
	case 2:
		if !PairedSuffixesMatch(sample.Files[0], sample.Files[1]) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   v.field(sample, "files"),
				Message: fmt.Sprintf("Sample '%s': files do not look like a read pair: %s, %s", sample.Description, sample.Files[0], sample.Files[1]),
				Fix:     "Paired files must differ only in the read number (_1/_2 or _R1/_R2)",
			})
		}
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   v.field(sample, "files"),
			Message: fmt.Sprintf("Sample '%s' has %d input files; expected 1 (single-end) or 2 (paired-end)", sample.Description, len(sample.Files)),
			Fix:     "Split additional lanes into separate sample records",
		})
		return
	}

	for _, f := range sample.Files {
		v.checkFileExists(sample, "files", f, result)
	}
}

// validateAlgorithm checks tool selections against the known vocabularies
func (v *Validator) validateAlgorithm(sample *model.Sample, result *ValidationResult) {
	alg := &sample.Algorithm

	checkTools := func(key string, tools []string) {
		for _, tool := range tools {
			if !model.KnownTool(key, tool) {
				vocab, _ := model.Vocabulary(key)
				result.Errors = append(result.Errors, ValidationError{
					Field:   v.field(sample, "algorithm."+key),
					Message: fmt.Sprintf("Sample '%s': unknown %s '%s'", sample.Description, key, tool),
					Fix:     fmt.Sprintf("Accepted values: %s", strings.Join(vocab, ", ")),
				})
			}
		}
	}

	if !alg.Aligner.IsZero() && !alg.Aligner.Disabled {
		checkTools("aligner", []string{alg.Aligner.Name})
	}
	if alg.TrimReads != "" {
		checkTools("trim_reads", []string{alg.TrimReads})
	}
	checkTools("adapters", alg.Adapters)
	checkTools("fusion_caller", alg.FusionCaller)
	checkTools("expression_caller", alg.ExpressionCaller)
	checkTools("peakcaller", alg.PeakCaller)
	if alg.Strandedness != "" {
		checkTools("strandedness", []string{alg.Strandedness})
	}

	for key := range alg.Extra {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   v.field(sample, "algorithm."+key),
			Message: fmt.Sprintf("Sample '%s': unknown algorithm key '%s'", sample.Description, key),
			Hint:    "The key is kept as-is but the pipeline may ignore it",
		})
	}

	// Fusion detection needs chimeric alignments, which only star emits.
	if len(alg.FusionCaller) > 0 {
		if alg.Aligner.Disabled {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   v.field(sample, "algorithm.fusion_caller"),
				Message: fmt.Sprintf("Sample '%s': fusion calling requested with alignment disabled", sample.Description),
				Hint:    "Only pseudo-alignment callers (pizzly) can run without an aligner",
			})
		} else if alg.Aligner.Name != "" && alg.Aligner.Name != "star" {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   v.field(sample, "algorithm.fusion_caller"),
				Message: fmt.Sprintf("Sample '%s': fusion calling works with star, not %s", sample.Description, alg.Aligner.Name),
				Hint:    "Set aligner: star to get chimeric alignments for fusion detection",
			})
		}
	}

	if len(alg.ExpressionCaller) > 1 {
		result.Hints = append(result.Hints, fmt.Sprintf("Sample '%s': quantification will run once per expression caller (%s)", sample.Description, strings.Join(alg.ExpressionCaller, ", ")))
	}
	if alg.SpikeinFasta != "" {
		result.Hints = append(result.Hints, fmt.Sprintf("Sample '%s': spike-in calibration enabled via %s", sample.Description, filepath.Base(alg.SpikeinFasta)))
	}
}

// validateAuxiliaryFiles warns about missing reference files on disk
func (v *Validator) validateAuxiliaryFiles(sample *model.Sample, result *ValidationResult) {
	alg := &sample.Algorithm
	v.checkFileExists(sample, "algorithm.spikein_fasta", alg.SpikeinFasta, result)
	v.checkFileExists(sample, "algorithm.known_fusions", alg.KnownFusions, result)
	v.checkFileExists(sample, "algorithm.transcriptome_gtf", alg.TranscriptomeGTF, result)
}

// validateChipPairing checks that each chip sample has a background input
// sample sharing one of its batches.
func (v *Validator) validateChipPairing(result *ValidationResult) {
	for i := range v.sheet.Details {
		sample := &v.sheet.Details[i]
		if sample.Metadata.Phenotype != model.PhenotypeChip {
			continue
		}

		paired := false
		for _, other := range v.sheet.Details {
			if other.Metadata.Phenotype == model.PhenotypeInput && sample.SharesBatch(other) {
				paired = true
				break
			}
		}
		if !paired {
			result.Errors = append(result.Errors, ValidationError{
				Field:   v.field(sample, "metadata.batch"),
				Message: fmt.Sprintf("Chip sample '%s' has no input sample in batch %s", sample.Description, strings.Join(sample.Metadata.Batch, ", ")),
				Fix:     "Add a record with metadata.phenotype: input sharing the batch",
			})
		}
	}
}

// validateBatches warns when multi-sample analyses have unbatched records
func (v *Validator) validateBatches(result *ValidationResult) {
	byAnalysis := make(map[string]int)
	for _, sample := range v.sheet.Details {
		byAnalysis[sample.Analysis]++
	}

	for i := range v.sheet.Details {
		sample := &v.sheet.Details[i]
		if byAnalysis[sample.Analysis] > 1 && len(sample.Metadata.Batch) == 0 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   v.field(sample, "metadata.batch"),
				Message: fmt.Sprintf("Sample '%s' has no batch but shares its analysis with other samples", sample.Description),
				Hint:    "Set metadata.batch to group samples processed together",
			})
		}
	}
}

// checkFileExists warns when a referenced path is missing. Existence is
// environment-dependent so this is never an error.
func (v *Validator) checkFileExists(sample *model.Sample, field, path string, result *ValidationResult) {
	if path == "" || v.BaseDir == "" {
		return
	}

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(v.BaseDir, resolved)
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Field:   v.field(sample, field),
			Message: fmt.Sprintf("Sample '%s': file not found: %s", sample.Description, path),
			Hint:    "Ensure the file exists before starting the pipeline",
		})
	}
}

func (v *Validator) field(sample *model.Sample, name string) string {
	return fmt.Sprintf("%s.%s", sample.Description, name)
}

// PairedSuffixesMatch reports whether two file names differ only in the read
// number, e.g. sample_1.fq.gz with sample_2.fq.gz or x_R1 with x_R2.
func PairedSuffixesMatch(first, second string) bool {
	if len(first) != len(second) {
		return false
	}

	diff := -1
	for i := 0; i < len(first); i++ {
		if first[i] != second[i] {
			if diff >= 0 {
				return false
			}
			diff = i
		}
	}
	if diff < 0 {
		return false
	}
	return first[diff] == '1' && second[diff] == '2'
}

// Format returns a human-readable string representation of the validation result
func (r *ValidationResult) Format() string {
	var sb strings.Builder

	okColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)

	if r.Valid {
		sb.WriteString(okColor.Sprint("✓ Sample sheet validation passed\n"))
		sb.WriteString(fmt.Sprintf("  %d sample(s) total", r.countSamples()))
		if len(r.Warnings) > 0 || len(r.Hints) > 0 {
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString(errColor.Sprintf("✗ Sample sheet validation failed with %d error(s)\n", len(r.Errors)))
	}

	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("\n%s %s\n", errColor.Sprint("ERROR:"), err.Message))
		if err.Field != "" {
			sb.WriteString(fmt.Sprintf("  Field: %s\n", err.Field))
		}
		if err.Fix != "" {
			sb.WriteString(fmt.Sprintf("  Fix: %s\n", err.Fix))
		}
	}

	for _, warn := range r.Warnings {
		sb.WriteString(fmt.Sprintf("\n%s %s\n", warnColor.Sprint("WARNING:"), warn.Message))
		if warn.Field != "" {
			sb.WriteString(fmt.Sprintf("  Field: %s\n", warn.Field))
		}
		if warn.Hint != "" {
			sb.WriteString(fmt.Sprintf("  Hint: %s\n", warn.Hint))
		}
	}

	if len(r.Hints) > 0 {
		sb.WriteString("\n")
		for _, hint := range r.Hints {
			sb.WriteString(fmt.Sprintf("💡 %s\n", hint))
		}
	}

	return sb.String()
}

// countSamples counts records in the validated sheet
func (r *ValidationResult) countSamples() int {
	if r.sheet == nil {
		return 0
	}
	return len(r.sheet.Details)
}
