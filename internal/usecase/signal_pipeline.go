package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"SmartMoney/internal/domain/models"
	domrepo "SmartMoney/internal/domain/repository"
	"SmartMoney/internal/services/signals"
	applogger "SmartMoney/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// NoDataMessage is returned in place of signals when the input batch is empty.
const NoDataMessage = "No option analysis data available for signal generation"

// SignalPipeline scores a batch of snapshots in parallel, then filters, ranks
// and truncates the surviving signals.
type SignalPipeline struct {
	engine  *signals.Engine
	metrics domrepo.Metrics
	logger  *applogger.Logger
	workers int
	now     func() time.Time
}

func NewSignalPipeline(engine *signals.Engine, metrics domrepo.Metrics, logger *applogger.Logger, workers int) *SignalPipeline {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = applogger.NewNop()
	}
	return &SignalPipeline{
		engine:  engine,
		metrics: metrics,
		logger:  logger,
		workers: workers,
		now:     time.Now,
	}
}

type scored struct {
	signal models.TradingSignal
	err    error
}

// Run never fails as a whole: a symbol that errors or panics is logged and
// left out of the result.
func (p *SignalPipeline) Run(ctx context.Context, records []models.OptionAnalysis, f models.SignalFilter) *models.SignalsResult {
	start := time.Now()
	res := &models.SignalsResult{
		GenerationID: uuid.NewString(),
		Signals:      []models.TradingSignal{},
		Filters:      f,
		Timestamp:    p.now().UTC(),
	}
	if len(records) == 0 {
		res.Message = NoDataMessage
		return res
	}

	// One slot per record; workers never share a slot.
	slots := make([]scored, len(records))
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				slots[i].err = err
				return nil
			}
			slots[i] = p.scoreOne(records[i])
			return nil
		})
	}
	_ = g.Wait()

	accepted := make([]models.TradingSignal, 0, len(records))
	for i, s := range slots {
		if s.err != nil {
			res.Skipped++
			p.recordFailure(records[i].Symbol, s.err)
			continue
		}
		if p.metrics != nil {
			p.metrics.RecordSignal(string(s.signal.SignalType), string(s.signal.SignalStrength))
		}
		if f.Accepts(s.signal) {
			accepted = append(accepted, s.signal)
		}
	}

	signals.Rank(accepted)
	summary := signals.Summarize(accepted)
	res.MarketSummary = &summary

	if f.Limit > 0 && len(accepted) > f.Limit {
		accepted = accepted[:f.Limit]
	}
	res.Signals = accepted
	res.TotalSignals = len(accepted)

	dur := time.Since(start)
	if p.metrics != nil {
		p.metrics.RecordLatency("signals_pipeline", dur.Seconds())
	}
	p.logger.Info("signals.pipeline generated",
		applogger.String("generation_id", res.GenerationID),
		applogger.Int("input", len(records)),
		applogger.Int("generated", len(records)-res.Skipped),
		applogger.Int("returned", res.TotalSignals),
		applogger.Int("skipped", res.Skipped),
		applogger.Duration("duration_ms", dur),
	)
	return res
}

func (p *SignalPipeline) scoreOne(rec models.OptionAnalysis) (out scored) {
	defer func() {
		if r := recover(); r != nil {
			out = scored{err: fmt.Errorf("panic scoring %q: %v", rec.Symbol, r)}
			p.logger.Debug("signals.pipeline panic stack", applogger.String("stack", string(debug.Stack())))
		}
	}()
	sig, err := p.engine.Generate(rec)
	return scored{signal: sig, err: err}
}

func (p *SignalPipeline) recordFailure(symbol string, err error) {
	reason, dataQuality := failureReason(err)
	if p.metrics != nil {
		p.metrics.RecordSymbolFailure(reason)
	}
	fields := []applogger.Field{
		applogger.String("symbol", symbol),
		applogger.String("reason", reason),
		applogger.Error(err),
	}
	if dataQuality {
		p.logger.Info("signals.pipeline symbol_skipped", fields...)
		return
	}
	p.logger.Warn("signals.pipeline symbol_failed", fields...)
}

// failureReason classifies a per-symbol error. dataQuality reports a
// snapshot that is unusable as stored, as opposed to a processing fault.
func failureReason(err error) (reason string, dataQuality bool) {
	switch {
	case errors.Is(err, signals.ErrMissingSymbol):
		return "missing_symbol", true
	case errors.Is(err, signals.ErrInvalidPrice):
		return "invalid_price", true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled", false
	}
	return "internal", false
}
