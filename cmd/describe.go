package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/omicsops/samplectl/internal/loader"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeSheetFile string

var describeCmd = &cobra.Command{
	Use:   "describe <description>",
	Short: "Show a single sample record in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := loader.FromFile(describeSheetFile)
		if err != nil {
			return fmt.Errorf("failed to load sample sheet: %w", err)
		}

		sample, ok := sheet.FindSample(args[0])
		if !ok {
			return fmt.Errorf("no sample with description '%s' in %s", args[0], describeSheetFile)
		}

		if output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sample)
		}
		return yaml.NewEncoder(os.Stdout).Encode(sample)
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeSheetFile, "sheet", "f", "samples.yaml", "sample sheet file")
	rootCmd.AddCommand(describeCmd)
}
