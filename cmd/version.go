package cmd

import (
	"github.com/omicsops/samplectl/cmd/version"
)

func init() {
	rootCmd.AddCommand(version.NewCommand())
}
