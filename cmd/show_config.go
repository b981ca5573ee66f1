package cmd

import (
	"fmt"

	"github.com/ethpandaops/heliograph/internal/config"
	"github.com/spf13/cobra"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Display current configuration",
	Long:  `Shows the configuration resolved from defaults, the config file, the .env file and environment variables.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), cfg.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
