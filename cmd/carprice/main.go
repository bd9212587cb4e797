package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/checkfox/go_carprice/internal/cli"
	"github.com/checkfox/go_carprice/internal/config"
	"github.com/checkfox/go_carprice/internal/logger"
)

func main() {
	// Initialize structured logger with defaults until config is known
	logger.Init("info", "text")
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug(ctx, "Configuration loaded",
		"backend_url", cfg.BaseURL(),
		"predict_timeout", cfg.Backend.PredictTimeout.String(),
		"options_timeout", cfg.Backend.OptionsTimeout.String())

	rootCmd := &cobra.Command{
		Use:   "carprice",
		Short: "Used car price estimator",
		Long: `carprice asks a prediction backend what a used car is worth.

Run without arguments for the landing screen, or go straight to
'carprice estimate'.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          cli.RunLanding,
	}

	rootCmd.AddCommand(cli.EstimateCmd(cfg))
	rootCmd.AddCommand(cli.OptionsCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
