package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/omicsops/samplectl/internal/loader"
	"github.com/omicsops/samplectl/internal/validator"
	"github.com/omicsops/samplectl/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [sheet-file]",
	Short: "Re-validate a sample sheet whenever it changes",
	Long: `Watch a sample sheet and re-run validation on every save.

Useful while authoring a sheet: keep the command running in a terminal and
findings appear as soon as the file is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetFile := "samples.yaml"
		if len(args) > 0 {
			sheetFile = args[0]
		}

		if _, err := os.Stat(sheetFile); err != nil {
			return fmt.Errorf("sample sheet not found: %s", sheetFile)
		}

		revalidate := func(path string) error {
			// Directory events fire for sibling files too
			if filepath.Clean(path) != filepath.Clean(sheetFile) {
				return nil
			}

			sheet, err := loader.FromFile(sheetFile)
			if err != nil {
				fmt.Printf("✗ %v\n", err)
				return nil
			}

			v := validator.NewValidator(sheet)
			v.BaseDir = filepath.Dir(sheetFile)
			fmt.Println(v.Validate().Format())
			return nil
		}

		// Validate once up front so the terminal is not empty
		revalidate(sheetFile)

		w, err := watcher.NewWatcher(revalidate)
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Watch(sheetFile); err != nil {
			return err
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
