package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"SmartMoney/internal/domain/models"
	"SmartMoney/internal/repository"
	"SmartMoney/internal/services/signals"
	"SmartMoney/internal/usecase"
	applogger "SmartMoney/pkg/logger"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

type generateOpts struct {
	input         string
	output        string
	signalType    string
	minConfidence int
	timeframe     string
	limit         int
	workers       int
	verbose       bool
}

func newGenerateCmd() *cobra.Command {
	o := &generateOpts{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Score a JSON file of option analysis snapshots",
		Long: `Run the signal engine over a JSON array of option analysis records
and print the ranked result as JSON.

Examples:
  smartmoney generate --input snapshots.json
  smartmoney generate --input snapshots.json --signal-type BUY --min-confidence 80 --limit 5
  smartmoney generate --input snapshots.json --timeframe SWING --output signals.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "JSON file of option analysis records")
	f.StringVarP(&o.output, "output", "o", "", "write result to file instead of stdout")
	f.StringVar(&o.signalType, "signal-type", models.FilterAll, "ALL, BUY or SELL")
	f.IntVar(&o.minConfidence, "min-confidence", models.DefaultMinConfidence, "minimum confidence 0-100")
	f.StringVar(&o.timeframe, "timeframe", models.FilterAll, "ALL, INTRADAY, SWING or POSITIONAL")
	f.IntVar(&o.limit, "limit", models.DefaultLimit, "maximum signals returned")
	f.IntVar(&o.workers, "workers", 4, "parallel scoring workers")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log skipped symbols to stderr")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runGenerate(cmd *cobra.Command, o *generateOpts) error {
	req := models.TradingSignalsRequest{
		SignalType:    o.signalType,
		MinConfidence: &o.minConfidence,
		Timeframe:     o.timeframe,
		Limit:         &o.limit,
	}
	if err := defaults.Set(&req); err != nil {
		return err
	}
	if err := validator.New().Struct(req); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	records, err := repository.LoadAnalysesFile(o.input)
	if err != nil {
		return err
	}

	logger := applogger.NewNop()
	if o.verbose {
		logger, err = applogger.New(&applogger.Config{Level: "debug", Format: "console", Output: "stderr"})
		if err != nil {
			return err
		}
	}
	pipeline := usecase.NewSignalPipeline(signals.NewEngine(), nil, logger, o.workers)
	res := pipeline.Run(cmd.Context(), records, req.Filter())

	var out io.Writer = cmd.OutOrStdout()
	if o.output != "" {
		fh, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer fh.Close()
		out = fh
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
