package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Logger is the shared logger instance for all commands
	Logger *logrus.Logger

	envFile    string
	configFile string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "heliograph <url>",
		Short: "Heliograph - automatic Lighthouse runner",
		Long: `Heliograph runs Lighthouse against a URL several times and reports
averaged performance metrics together with the value of every run.

Reports of each run and a summary.txt are written below the output directory,
grouped by domain, path, timestamp and device.

Examples:
  heliograph https://example.com
  heliograph https://example.com/blog --mobile --block-gtm
  heliograph https://example.com --sync --runs 3`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}
			if verbose {
				Logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		RunE: runCampaign,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize the shared logger
	Logger = logrus.New()

	// Set log level from environment variable
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // Default to info
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		// Can't use Logger here since it might not be set up yet
		fmt.Printf("Invalid LOG_LEVEL '%s', defaulting to 'info'\n", logLevel)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadEnvFile loads the specified environment file
func loadEnvFile(file string) error {
	if file == "" {
		return nil
	}

	if err := godotenv.Load(file); err != nil {
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}
