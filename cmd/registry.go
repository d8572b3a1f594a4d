package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omicsops/samplectl/internal/registry"
)

var registryPath string

// defaultRegistryPath puts the run registry under the user data directory
func defaultRegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return registry.DefaultBoltFilePath
	}
	return filepath.Join(home, ".local", "share", "samplectl", "runs.db")
}

// openRegistry opens the bolt-backed run registry
func openRegistry() (registry.RunStorage, error) {
	path := registryPath
	if path == "" {
		path = defaultRegistryPath()
	}

	store := registry.NewBoltStorage(&registry.BoltOptions{Path: path})
	if err := store.Open(); err != nil {
		return nil, fmt.Errorf("failed to open run registry: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "run registry database file (default is $HOME/.local/share/samplectl/runs.db)")
}
