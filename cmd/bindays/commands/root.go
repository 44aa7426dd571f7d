package commands

import (
	"bindays-backend/internal/components/telemetry"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
)

// config is loaded before any subcommand runs
var config Config

var rootCmd = &cobra.Command{
	Use:   "bindays",
	Short: "bindays fetches the bin collection days of a property in East Renfrewshire.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		cfg, err := readConfig(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		config = cfg
		return nil
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "bindays.json5", "The configuration file to read defaults from.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
