package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/omicsops/samplectl/internal/loader"
	"github.com/omicsops/samplectl/internal/registry"
	"github.com/omicsops/samplectl/internal/validator"
	"github.com/spf13/cobra"
)

var (
	validateStrict bool
	validateRecord bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [sheet-file]",
	Short: "Validate a sample sheet",
	Long: `Validate a sample sheet YAML file before handing it to the pipeline.

This command checks for common authoring errors including:
- YAML structure and required fields
- Paired-end files that do not form a read pair
- Tool names outside the pipeline vocabularies
- Unknown genome builds and algorithm keys
- Missing read and reference files on disk
- ChIP samples without a background input in their batch

Examples:
  # Validate a sheet
  samplectl validate project.yaml

  # Treat warnings as errors and record the run
  samplectl validate --strict --record project.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetFile := "samples.yaml"
		if len(args) > 0 {
			sheetFile = args[0]
		}

		if _, err := os.Stat(sheetFile); err != nil {
			return fmt.Errorf("sample sheet not found: %s", sheetFile)
		}

		sheet, err := loader.FromFile(sheetFile)
		if err != nil {
			return fmt.Errorf("failed to load sample sheet: %w", err)
		}

		v := validator.NewValidator(sheet)
		v.BaseDir = filepath.Dir(sheetFile)
		v.Strict = validateStrict

		result := v.Validate()

		fmt.Println(result.Format())

		if validateRecord {
			if err := recordRun(cmd.Context(), sheetFile, len(sheet.Details), result); err != nil {
				return fmt.Errorf("failed to record run: %w", err)
			}
		}

		if !result.Valid {
			os.Exit(1)
		}

		return nil
	},
}

// recordRun persists the validation outcome to the run registry
func recordRun(ctx context.Context, sheetFile string, samples int, result *validator.ValidationResult) error {
	data, err := os.ReadFile(sheetFile)
	if err != nil {
		return err
	}

	store, err := openRegistry()
	if err != nil {
		return err
	}
	defer store.Close()

	run := registry.NewRunInfo(sheetFile, data, samples, result)
	if err := store.CreateRun(ctx, run); err != nil {
		return err
	}

	fmt.Printf("Recorded run %s\n", run.ID)
	return nil
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
	validateCmd.Flags().BoolVar(&validateRecord, "record", false, "record the run in the registry")
	rootCmd.AddCommand(validateCmd)
}
