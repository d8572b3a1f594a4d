package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/omicsops/samplectl/internal/loader"
	"github.com/omicsops/samplectl/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:   "list [sheet-file]",
	Short: "List the samples in a sheet",
	Long:  `List the sample records in a sheet with their analysis, genome build and input files.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetFile := "samples.yaml"
		if len(args) > 0 {
			sheetFile = args[0]
		}

		sheet, err := loader.FromFile(sheetFile)
		if err != nil {
			return fmt.Errorf("failed to load sample sheet: %w", err)
		}

		switch output {
		case "yaml":
			return yaml.NewEncoder(os.Stdout).Encode(sheet)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sheet)
		case "table":
			printSampleTable(sheet)
			return nil
		default:
			return fmt.Errorf("unknown output format: %s", output)
		}
	},
}

// printSampleTable writes one row per sample record
func printSampleTable(sheet *model.SampleSheet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DESCRIPTION\tANALYSIS\tGENOME\tREADS\tBATCH\tALIGNER")
	for _, sample := range sheet.Details {
		ends := "single-end"
		if len(sample.Files) == 2 {
			ends = "paired-end"
		}
		batch := strings.Join(sample.Metadata.Batch, ",")
		if batch == "" {
			batch = "-"
		}
		aligner := sample.Algorithm.Aligner.String()
		if aligner == "" {
			aligner = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			sample.Description, sample.Analysis, sample.GenomeBuild, ends, batch, aligner)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
