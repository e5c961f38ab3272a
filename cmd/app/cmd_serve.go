package main

import (
	"fmt"

	"SmartMoney/internal/di"
	"SmartMoney/pkg/config"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trading signals API",
		Long: `Run the HTTP API serving /api/trading-signals and /api/health.

Examples:
  smartmoney serve --config config/config.yaml
  SOURCE_TYPE=file SOURCE_FILE=./snapshots.json smartmoney serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}

			app, cleanup, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			defer cleanup()

			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "config/config.yaml", "config file path")
	return cmd
}
