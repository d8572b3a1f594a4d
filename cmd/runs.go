package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/omicsops/samplectl/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	runsSheet   string
	runsFailed  bool
	runsLimit   int
	runsPruneBy time.Duration
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query recorded validation runs",
	Long:  `Query the validation runs recorded with samplectl validate --record.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), registry.ListFilter{
			SheetPath:   runsSheet,
			OnlyInvalid: runsFailed,
			Limit:       runsLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tSHEET\tSAMPLES\tRESULT")
		for _, run := range runs {
			result := "ok"
			if !run.Valid {
				result = fmt.Sprintf("%d error(s)", run.ErrorCount)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				run.ID, run.Time.Format(time.RFC3339), run.SheetPath, run.Samples, result)
		}
		return w.Flush()
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.GetRun(cmd.Context(), args[0])
		if err != nil {
			if registry.IsNotFound(err) {
				return fmt.Errorf("no run with ID %s", args[0])
			}
			return fmt.Errorf("failed to get run: %w", err)
		}

		if output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}
		return yaml.NewEncoder(os.Stdout).Encode(run)
	},
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRegistry()
		if err != nil {
			return err
		}
		defer store.Close()

		cutoff := time.Now().Add(-runsPruneBy)
		pruned, err := store.PruneBefore(cmd.Context(), cutoff)
		if err != nil {
			return fmt.Errorf("failed to prune runs: %w", err)
		}

		fmt.Printf("Pruned %d run(s)\n", pruned)
		return nil
	},
}

func init() {
	runsListCmd.Flags().StringVar(&runsSheet, "sheet", "", "only runs of this sheet")
	runsListCmd.Flags().BoolVar(&runsFailed, "failed", false, "only failed runs")
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to show")
	runsPruneCmd.Flags().DurationVar(&runsPruneBy, "older-than", 30*24*time.Hour, "delete runs older than this")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsPruneCmd)
	rootCmd.AddCommand(runsCmd)
}
