package cmd

import (
	"fmt"
	"os"

	"github.com/omicsops/samplectl/internal/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	output   string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "samplectl",
	Short: "Toolkit for pipeline sample sheets",
	Long: `samplectl is a command-line tool for working with the YAML sample sheets
consumed by sequencing pipelines. It validates sheets against the known tool
vocabularies, scaffolds new sheets from CSV metadata tables, and keeps a
history of validation runs for CI.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/samplectl/samplectl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table|yaml|json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	// Bind flags to viper
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home + "/.config/samplectl")
		viper.SetConfigType("yaml")
		viper.SetConfigName("samplectl")
	}

	viper.SetEnvPrefix("SAMPLECTL")
	viper.AutomaticEnv() // read in environment variables that match

	// Initialize the logger
	if err := logger.Init(logLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("Using config file", zap.String("file", viper.ConfigFileUsed()))
	}
}
