package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "smartmoney",
		Short: "Trading signals from option-flow analytics",
		Long: `SmartMoney turns per-symbol option analytics snapshots into ranked
BUY/SELL/HOLD/AVOID signals with trade levels and a market summary.

Available commands:
  serve      - Run the HTTP API (and optional Kafka snapshot ingest)
  generate   - Score a JSON file of snapshots offline`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newGenerateCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
