package cmd

import (
	"fmt"
	"os"

	"github.com/omicsops/samplectl/internal/model"
	"github.com/omicsops/samplectl/internal/template"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	templateCSV      string
	templateAnalysis string
	templateGenome   string
	templateAligner  string
	templateUpload   string
	templateOut      string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Scaffold a sample sheet from a CSV metadata table",
	Long: `Build a sample sheet from a CSV metadata table.

The table needs a header row with the columns:
  samplename,file1,file2,batch,phenotype

file2 is left empty for single-end samples. Every generated record shares
the analysis, genome build and algorithm given on the command line.

Example:
  samplectl template --csv meta.csv --analysis RNA-seq --genome hg38 -f project.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := template.ReadCSV(templateCSV)
		if err != nil {
			return err
		}

		opts := template.Options{
			Analysis:    templateAnalysis,
			GenomeBuild: templateGenome,
			UploadDir:   templateUpload,
		}
		if templateAligner != "" {
			opts.Algorithm.Aligner = model.Aligner{Name: templateAligner}
		}

		sheet, err := template.Build(rows, opts)
		if err != nil {
			return fmt.Errorf("failed to build sample sheet: %w", err)
		}

		out := os.Stdout
		if templateOut != "" {
			f, err := os.Create(templateOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(sheet); err != nil {
			return fmt.Errorf("failed to write sample sheet: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	templateCmd.Flags().StringVar(&templateCSV, "csv", "", "CSV metadata table (required)")
	templateCmd.Flags().StringVar(&templateAnalysis, "analysis", "RNA-seq", "analysis for every record")
	templateCmd.Flags().StringVar(&templateGenome, "genome", "", "genome build for every record (required)")
	templateCmd.Flags().StringVar(&templateAligner, "aligner", "", "aligner for every record")
	templateCmd.Flags().StringVar(&templateUpload, "upload", "", "upload directory for final outputs")
	templateCmd.Flags().StringVarP(&templateOut, "file", "f", "", "output file (default is stdout)")
	templateCmd.MarkFlagRequired("csv")
	templateCmd.MarkFlagRequired("genome")
	rootCmd.AddCommand(templateCmd)
}
